package repositories

import (
	"errors"

	"jualsampah/internal/models"
)

// ErrCollectorNotFound is returned when no collector matches the lookup.
var ErrCollectorNotFound = errors.New("collector not found")

// CollectorRepository defines the interface for collector account data access.
type CollectorRepository interface {
	Create(collector *models.Collector) error
	GetByUsername(username string) (*models.Collector, error)
}
