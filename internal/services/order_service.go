package services

import (
	"fmt"
	"time"

	"jualsampah/internal/models"
	"jualsampah/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type statusText struct {
	applied  string
	conflict string
}

// statusTexts holds the user-facing messages of each status action.
var statusTexts = map[models.OrderStatus]statusText{
	models.StatusChecking: {
		applied:  "Order kamu sedang dalam pengecekan",
		conflict: "Order sedang dalam pengecekan",
	},
	models.StatusProcessing: {
		applied:  "Order kamu sedang diproses, pengepul sampah lagi di jalan menuju rumahmu",
		conflict: "Order sedang diproses",
	},
	models.StatusCompleted: {
		applied:  "Transaksi berhasil! Order kamu telah selesai",
		conflict: "Order telah selesai",
	},
	models.StatusCancelled: {
		applied:  "Order kamu berhasil dibatalkan",
		conflict: "Order telah dibatalkan",
	},
}

// StatusMessage returns the success message shown after moving an order to status.
func StatusMessage(status models.OrderStatus) string {
	return statusTexts[status].applied
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher // may be nil
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. publisher may be nil to disable events.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  newValidator(),
	}
}

// ListOrders retrieves all orders, newest first when sort names a timestamp.
func (s *OrderService) ListOrders(sort repositories.SortField) ([]models.Order, error) {
	if !sort.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	return s.orderRepo.GetAll(sort)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByEmail retrieves the orders submitted with email. No match is reported as not found.
func (s *OrderService) GetOrdersByEmail(email string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("orders with email %s: %w", email, repositories.ErrOrderNotFound)
	}
	return orders, nil
}

// GetTrackingStatus returns the current lifecycle status of an order.
func (s *OrderService) GetTrackingStatus(id uint) (models.OrderStatus, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// TotalEarnings sums weight times price per kilogram over every order of username.
func (s *OrderService) TotalEarnings(username string) (float64, error) {
	return s.sumWeighted(username, func(o models.Order) int { return o.PricePerKg })
}

// TotalPoints sums weight times reward points over every order of username.
func (s *OrderService) TotalPoints(username string) (float64, error) {
	return s.sumWeighted(username, func(o models.Order) int { return o.Points })
}

func (s *OrderService) sumWeighted(username string, factor func(models.Order) int) (float64, error) {
	orders, err := s.orderRepo.GetByUsername(username)
	if err != nil {
		return 0, fmt.Errorf("failed to load orders of %s: %w", username, err)
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(decimal.NewFromFloat(o.WeightKg).Mul(decimal.NewFromInt(int64(factor(o)))))
	}
	return total.InexactFloat64(), nil
}

// CreateOrder validates the request, prices it and stores it as Pending.
func (s *OrderService) CreateOrder(req models.OrderRequest) (*models.Order, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	now := time.Now()
	order := applyRequest(models.Order{Status: models.StatusPending, CreatedAt: now}, req, now)
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	publishOrderEvent(s.publisher, EventOrderCreated, &order)
	return &order, nil
}

// UpdateOrder replaces every user-supplied field of an order and re-prices it.
func (s *OrderService) UpdateOrder(id uint, req models.OrderRequest) (*models.Order, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := applyRequest(*current, req, time.Now())
	if err := s.orderRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}

	publishOrderEvent(s.publisher, EventOrderUpdated, &updated)
	return &updated, nil
}

// AdvanceStatus moves an order to target. Any target is reachable from any
// status except the one the order already has.
func (s *OrderService) AdvanceStatus(id uint, target models.OrderStatus) (*models.Order, error) {
	if !models.IsValidTarget(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current.Status == target {
		return nil, &StatusConflictError{Status: target, Message: statusTexts[target].conflict}
	}

	updated := *current
	updated.Status = target
	updated.UpdatedAt = time.Now()
	if err := s.orderRepo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, err)
	}

	publishOrderEvent(s.publisher, EventOrderStatusChanged, &updated)
	return &updated, nil
}

// DeleteOrder permanently removes an order.
func (s *OrderService) DeleteOrder(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}

	publishOrderEvent(s.publisher, EventOrderDeleted, order)
	return nil
}

// Ping reports whether the order store is reachable.
func (s *OrderService) Ping() error {
	return s.orderRepo.Ping()
}

// applyRequest returns a copy of base carrying the request fields and the
// price and points derived from the category.
func applyRequest(base models.Order, req models.OrderRequest, now time.Time) models.Order {
	pricePerKg, points := LookupPrice(req.WasteCategory)

	base.Username = req.Username
	base.Email = req.Email
	base.WasteCategory = req.WasteCategory
	base.PricePerKg = pricePerKg
	if req.WeightKg != nil {
		base.WeightKg = *req.WeightKg
	}
	base.Points = points
	base.CollectorLocation = req.CollectorLocation
	base.UserLocation = req.UserLocation
	base.Note = req.Note
	base.UpdatedAt = now
	return base
}
