package app

import (
	"encoding/json"
	"fmt"
	"log"

	"jualsampah/internal/models"

	"github.com/streadway/amqp"
)

// LogOrderEvent is the RabbitMQ consumer callback: it decodes an order event
// and writes it to the log. Undecodable messages are reported as errors.
func LogOrderEvent(msg amqp.Delivery) error {
	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode order event %q: %w", msg.MessageId, err)
	}
	log.Printf("Received %s for order %d (user %s, status %s)", event.Event, event.OrderID, event.Username, event.Status)
	return nil
}
