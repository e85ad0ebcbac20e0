package repositories

import (
	"errors"
	"fmt"

	"jualsampah/internal/models"

	"gorm.io/gorm"
)

// GORMCollectorRepository is a GORM implementation of CollectorRepository.
type GORMCollectorRepository struct {
	db *gorm.DB
}

// NewGORMCollectorRepository creates a new instance of GORMCollectorRepository.
func NewGORMCollectorRepository(db *gorm.DB) *GORMCollectorRepository {
	return &GORMCollectorRepository{
		db: db,
	}
}

// Create creates a new collector in the database.
func (r *GORMCollectorRepository) Create(collector *models.Collector) error {
	if err := r.db.Create(collector).Error; err != nil {
		return fmt.Errorf("failed to create collector: %w", err)
	}
	return nil
}

// GetByUsername retrieves a collector by their username from the database.
func (r *GORMCollectorRepository) GetByUsername(username string) (*models.Collector, error) {
	var collector models.Collector
	if err := r.db.First(&collector, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("collector with username %s: %w", username, ErrCollectorNotFound)
		}
		return nil, fmt.Errorf("failed to get collector by username %s: %w", username, err)
	}
	return &collector, nil
}
