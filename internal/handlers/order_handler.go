package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strconv"

	"jualsampah/internal/models"
	"jualsampah/internal/repositories"
	"jualsampah/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	msgOrderNotFound  = "Order tidak ditemukan"
	msgInternalError  = "Internal server error"
	msgInvalidRequest = "Invalid request body"
)

// statusActions maps the action path segment to the status it requests.
var statusActions = map[string]models.OrderStatus{
	"pengecekan": models.StatusChecking,
	"diproses":   models.StatusProcessing,
	"selesai":    models.StatusCompleted,
	"dibatalkan": models.StatusCancelled,
}

// OrderHandler handles HTTP requests for orders and per-user aggregates.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order and user routes. statusGuards run in
// front of the status action routes only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, statusGuards ...fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/email/:email", h.HandleGetOrdersByEmail)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/lacak", h.HandleTrackOrder)
	orderRoutes.Post("/", h.HandleCreateOrder)
	for action, status := range statusActions {
		handlers := append(append([]fiber.Handler{}, statusGuards...), h.HandleAdvanceStatus(status))
		orderRoutes.Post("/:id/"+action, handlers...)
	}
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)

	userRoutes := router.Group("/users")
	userRoutes.Get("/:username/price", h.HandleTotalEarnings)
	userRoutes.Get("/:username/totalpoints", h.HandleTotalPoints)
}

// HandleGetOrders lists every order, optionally sorted with ?sort=created_at|updated_at.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(repositories.SortField(c.Query("sort")))
	if err != nil {
		return h.respondError(c, err, "listing orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(fiber.Map{
		"message": "Berhasil menampilkan semua order",
		"data":    orders,
	})
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, ok := parseOrderID(c)
	if !ok {
		return notFound(c)
	}
	order, err := h.service.GetOrder(id)
	if err != nil {
		return h.respondError(c, err, "getting order")
	}
	return c.JSON(fiber.Map{"data": order})
}

// HandleGetOrdersByEmail retrieves every order submitted with an email.
func (h *OrderHandler) HandleGetOrdersByEmail(c *fiber.Ctx) error {
	email, ok := pathParam(c, "email")
	if !ok {
		return notFound(c)
	}
	orders, err := h.service.GetOrdersByEmail(email)
	if err != nil {
		return h.respondError(c, err, "getting orders by email")
	}
	return c.JSON(fiber.Map{"data": orders})
}

// HandleTrackOrder returns the lifecycle status of an order.
func (h *OrderHandler) HandleTrackOrder(c *fiber.Ctx) error {
	id, ok := parseOrderID(c)
	if !ok {
		return notFound(c)
	}
	status, err := h.service.GetTrackingStatus(id)
	if err != nil {
		return h.respondError(c, err, "tracking order")
	}
	return c.JSON(fiber.Map{"status": status})
}

// HandleTotalEarnings returns how much a user earned across all orders.
func (h *OrderHandler) HandleTotalEarnings(c *fiber.Ctx) error {
	username, ok := pathParam(c, "username")
	if !ok {
		return invalidUsername(c)
	}
	total, err := h.service.TotalEarnings(username)
	if err != nil {
		return h.respondError(c, err, "computing earnings")
	}
	return c.JSON(fiber.Map{"total_income_jual_sampah": total})
}

// HandleTotalPoints returns the weight-scaled reward points of a user.
func (h *OrderHandler) HandleTotalPoints(c *fiber.Ctx) error {
	username, ok := pathParam(c, "username")
	if !ok {
		return invalidUsername(c)
	}
	total, err := h.service.TotalPoints(username)
	if err != nil {
		return h.respondError(c, err, "computing points")
	}
	return c.JSON(fiber.Map{"totalPoints": total})
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.OrderRequest
	if err := parseBody(c, &req); err != nil {
		log.Printf("Error parsing create order body: %v", err)
		return respondBodyError(c, err)
	}

	order, err := h.service.CreateOrder(req)
	if err != nil {
		return h.respondError(c, err, "creating order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order kamu berhasil!",
		"data":    order,
	})
}

// HandleUpdateOrder replaces the fields of an existing order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, ok := parseOrderID(c)
	if !ok {
		return notFound(c)
	}

	var req models.OrderRequest
	if err := parseBody(c, &req); err != nil {
		log.Printf("Error parsing update body for order %d: %v", id, err)
		return respondBodyError(c, err)
	}

	order, err := h.service.UpdateOrder(id, req)
	if err != nil {
		return h.respondError(c, err, "updating order")
	}
	return c.JSON(fiber.Map{
		"message": "Order kamu berhasil diupdate!",
		"data":    order,
	})
}

// HandleAdvanceStatus returns a handler moving an order to status.
func (h *OrderHandler) HandleAdvanceStatus(status models.OrderStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseOrderID(c)
		if !ok {
			return notFound(c)
		}
		order, err := h.service.AdvanceStatus(id, status)
		if err != nil {
			return h.respondError(c, err, "changing order status")
		}
		if collector, ok := c.Locals("username").(string); ok {
			log.Printf("Collector %s moved order %d to %s", collector, id, status)
		}
		return c.JSON(fiber.Map{
			"message": services.StatusMessage(status),
			"data":    order,
		})
	}
}

// HandleDeleteOrder permanently removes an order.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, ok := parseOrderID(c)
	if !ok {
		return notFound(c)
	}
	if err := h.service.DeleteOrder(id); err != nil {
		return h.respondError(c, err, "deleting order")
	}
	return c.JSON(fiber.Map{"message": "Order kamu berhasil dihapus"})
}

// respondError maps a service error to its HTTP response. Unknown errors
// are logged and hidden behind a generic 500.
func (h *OrderHandler) respondError(c *fiber.Ctx, err error, action string) error {
	var validationErrs services.ValidationErrors
	var conflict *services.StatusConflictError

	switch {
	case errors.As(err, &validationErrs):
		return c.Status(fiber.StatusBadRequest).JSON(validationErrs)
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": conflict.Message})
	case errors.Is(err, repositories.ErrOrderNotFound):
		return notFound(c)
	case errors.Is(err, services.ErrInvalidSort):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Parameter sort tidak valid",
			"error":   err.Error(),
		})
	default:
		log.Printf("Error %s: %v", action, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternalError})
	}
}

// parseOrderID reads the :id param. Anything that is not a positive integer
// cannot name an order.
func parseOrderID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pathParam returns the percent-decoded value of a path segment.
func pathParam(c *fiber.Ctx, name string) (string, bool) {
	value, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", false
	}
	return value, true
}

// parseBody decodes the request body into out. A value of the wrong JSON type
// is reported as a field error; only unreadable bodies come back as-is.
func parseBody(c *fiber.Ctx, out interface{}) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return services.ValidationErrors{services.TypeMismatch(typeErr.Field, typeErr.Type.Kind())}
	}
	return err
}

func respondBodyError(c *fiber.Ctx, err error) error {
	var validationErrs services.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(validationErrs)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": msgInvalidRequest,
		"error":   err.Error(),
	})
}

func invalidUsername(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username tidak valid"})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgOrderNotFound})
}
