package services

import (
	"encoding/json"
	"log"
	"time"

	"jualsampah/internal/models"

	"github.com/google/uuid"
)

// Routing keys of published order events.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// EventPublisher delivers order events to a message broker.
type EventPublisher interface {
	PublishOrderEvent(routingKey string, body []byte) error
}

// publishOrderEvent sends an event for order. Failures are logged and never
// propagated; the database write has already happened.
func publishOrderEvent(publisher EventPublisher, event string, order *models.Order) {
	if publisher == nil {
		return
	}

	msg := models.OrderEvent{
		ID:         uuid.New().String(),
		Event:      event,
		OrderID:    order.ID,
		Username:   order.Username,
		Email:      order.Email,
		Category:   order.WasteCategory,
		WeightKg:   order.WeightKg,
		Status:     order.Status,
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", event, order.ID, err)
		return
	}
	if err := publisher.PublishOrderEvent(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %d: %v", event, order.ID, err)
		return
	}
	log.Printf("Published %s event for order %d", event, order.ID)
}
