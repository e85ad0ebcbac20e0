package repositories

import (
	"errors"
	"fmt"

	"jualsampah/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first when a sort field is given.
func (r *GORMOrderRepository) GetAll(sort SortField) ([]models.Order, error) {
	var orders []models.Order
	query := r.db
	switch sort {
	case SortCreatedAt:
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "createdAt"}, Desc: true})
	case SortUpdatedAt:
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "updatedAt"}, Desc: true})
	default:
		query = query.Order("id ASC")
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByEmail retrieves every order submitted with the given email.
func (r *GORMOrderRepository) GetByEmail(email string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("email = ?", email).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders by email %s: %w", email, err)
	}
	return orders, nil
}

// GetByUsername retrieves every order submitted by the given username.
func (r *GORMOrderRepository) GetByUsername(username string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("username = ?", username).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders by username %s: %w", username, err)
	}
	return orders, nil
}

// Create inserts a new order; the database assigns its ID.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update writes every column of an existing order.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	// Save would insert a missing row, so update all columns explicitly instead.
	res := r.db.Model(order).Select("*").Omit("createdAt").Updates(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL counts changed rows rather than matched ones, so an identical
		// write also reports zero.
		var count int64
		if err := r.db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order %d: %w", order.ID, err)
		}
		if count == 0 {
			return fmt.Errorf("order with ID %d: %w", order.ID, ErrOrderNotFound)
		}
	}
	return nil
}

// Delete removes an order permanently.
func (r *GORMOrderRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	return nil
}

// Ping checks that the underlying database is reachable.
func (r *GORMOrderRepository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Ping()
}
