package repositories

import (
	"errors"

	"jualsampah/internal/models"
)

// ErrOrderNotFound is returned when no order matches the requested ID.
var ErrOrderNotFound = errors.New("order not found")

// SortField selects the ordering of ListOrders results.
type SortField string

const (
	SortNone      SortField = ""
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

// IsValid reports whether f is a supported sort key.
func (f SortField) IsValid() bool {
	switch f {
	case SortNone, SortCreatedAt, SortUpdatedAt:
		return true
	default:
		return false
	}
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(sort SortField) ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByEmail(email string) ([]models.Order, error)
	GetByUsername(username string) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id uint) error
	Ping() error
}
