package services_test

import (
	"testing"

	"jualsampah/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestLookupPrice(t *testing.T) {
	cases := []struct {
		category   string
		pricePerKg int
		points     int
	}{
		{"Minyak jelantah", 9500, 10},
		{"Kaleng", 13000, 5},
		{"Paper", 5000, 2},
		{"Organik", 3000, 3},
		{"Plastik", 0, 0},
		{"kaleng", 0, 0}, // keys are case sensitive
		{"", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			price, points := services.LookupPrice(tc.category)
			assert.Equal(t, tc.pricePerKg, price)
			assert.Equal(t, tc.points, points)
		})
	}
}
