package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"jualsampah/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		nextID: 1,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll(sortBy SortField) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := r.filter(func(models.Order) bool { return true })
	switch sortBy {
	case SortCreatedAt:
		sort.SliceStable(orderList, func(i, j int) bool {
			return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
		})
	case SortUpdatedAt:
		sort.SliceStable(orderList, func(i, j int) bool {
			return orderList[i].UpdatedAt.After(orderList[j].UpdatedAt)
		})
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	return &order, nil
}

// GetByEmail returns the orders submitted with the given email.
func (r *MockOrderRepository) GetByEmail(email string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(o models.Order) bool { return o.Email == email }), nil
}

// GetByUsername returns the orders submitted by the given username.
func (r *MockOrderRepository) GetByUsername(username string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(o models.Order) bool { return o.Username == username }), nil
}

// Create adds a new order and assigns the next ID.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	r.orders[order.ID] = *order
	return nil
}

// Update replaces an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return fmt.Errorf("order with ID %d: %w", order.ID, ErrOrderNotFound)
	}
	order.CreatedAt = existing.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order by its ID.
func (r *MockOrderRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %d: %w", id, ErrOrderNotFound)
	}
	delete(r.orders, id)
	return nil
}

// Ping always succeeds.
func (r *MockOrderRepository) Ping() error {
	return nil
}

// filter returns matching orders in ID order. Callers must hold the lock.
func (r *MockOrderRepository) filter(keep func(models.Order) bool) []models.Order {
	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(order) {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool { return orderList[i].ID < orderList[j].ID })
	return orderList
}

