package models

import "time"

// OrderStatus is the lifecycle state of a waste-sale order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusChecking   OrderStatus = "Pengecekan"
	StatusProcessing OrderStatus = "Diproses"
	StatusCompleted  OrderStatus = "Selesai"
	StatusCancelled  OrderStatus = "Dibatalkan"
)

// IsValidTarget reports whether status can be requested through a status action.
// Pending is only ever assigned at creation.
func IsValidTarget(status OrderStatus) bool {
	switch status {
	case StatusChecking, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order is one waste-sale transaction submitted by a user.
// Column names match the historical `orders` table.
type Order struct {
	ID                uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	Username          string      `json:"username" gorm:"column:username;type:varchar(255);not null;index"`
	Email             string      `json:"email" gorm:"column:email;type:varchar(255);index"`
	WasteCategory     string      `json:"jenis_sampah" gorm:"column:jenis_sampah;type:varchar(255);not null"`
	PricePerKg        int         `json:"hargaPerKg" gorm:"column:hargaPerKg;not null"`
	WeightKg          float64     `json:"berat_sampah" gorm:"column:berat_sampah;not null"`
	Points            int         `json:"points" gorm:"column:points;not null"`
	CollectorLocation string      `json:"lokasi_pengepul" gorm:"column:lokasi_pengepul;type:varchar(255);not null"`
	UserLocation      string      `json:"lokasi_user" gorm:"column:lokasi_user;type:varchar(255);not null"`
	Note              string      `json:"catatan" gorm:"column:catatan;type:varchar(255)"`
	Status            OrderStatus `json:"status_pemesanan" gorm:"column:status_pemesanan;type:varchar(20);not null;default:Pending"`
	CreatedAt         time.Time   `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt" gorm:"column:updatedAt"`
}

// TableName pins the table name regardless of naming strategy.
func (Order) TableName() string {
	return "orders"
}

// OrderRequest is the body accepted by create and full update.
// Price and points are not part of it; they are always derived from the category.
type OrderRequest struct {
	Username          string   `json:"username" validate:"required"`
	Email             string   `json:"email" validate:"omitempty,email"`
	WasteCategory     string   `json:"jenis_sampah" validate:"required"`
	WeightKg          *float64 `json:"berat_sampah" validate:"required,gt=0"` // nil when absent, so 0 fails on gt
	CollectorLocation string   `json:"lokasi_pengepul" validate:"required"`
	UserLocation      string   `json:"lokasi_user" validate:"required"`
	Note              string   `json:"catatan"`
}

// OrderEvent is published to the message broker after each order mutation.
type OrderEvent struct {
	ID         string      `json:"id"`
	Event      string      `json:"event"` // e.g., "order.created", "order.status_changed"
	OrderID    uint        `json:"order_id"`
	Username   string      `json:"username"`
	Email      string      `json:"email,omitempty"`
	Category   string      `json:"jenis_sampah,omitempty"`
	WeightKg   float64     `json:"berat_sampah,omitempty"`
	Status     OrderStatus `json:"status_pemesanan,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
