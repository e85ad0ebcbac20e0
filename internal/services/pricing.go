package services

// Waste categories with a known price.
const (
	CategoryCookingOil = "Minyak jelantah"
	CategoryCans       = "Kaleng"
	CategoryPaper      = "Paper"
	CategoryOrganic    = "Organik"
)

type priceEntry struct {
	pricePerKg int
	points     int
}

var priceTable = map[string]priceEntry{
	CategoryCookingOil: {pricePerKg: 9500, points: 10},
	CategoryCans:       {pricePerKg: 13000, points: 5},
	CategoryPaper:      {pricePerKg: 5000, points: 2},
	CategoryOrganic:    {pricePerKg: 3000, points: 3},
}

// LookupPrice returns the price per kilogram and reward points for a waste
// category. Unknown categories are worth nothing.
func LookupPrice(category string) (pricePerKg, points int) {
	entry := priceTable[category]
	return entry.pricePerKg, entry.points
}
