// Package catalog holds the fixed add-on catalogs and the built-in
// location fallback. Entries are seed data, not remote state.
package catalog

import "github.com/roamdrive/rental-reservation-system/internal/model"

// DriverSurchargePerDay is charged for each rental day of a with-driver
// booking.
const DriverSurchargePerDay = 300.0

// Accessory is an optional add-on billed per rental day.
type Accessory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
}

// Insurance is an optional cover billed per rental day.
type Insurance struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PricePerDay float64 `json:"pricePerDay"`
}

var accessories = []Accessory{
	{ID: "gps", Name: "GPS Navigation", PricePerDay: 150},
	{ID: "child_seat", Name: "Child Seat", PricePerDay: 100},
	{ID: "roof_rack", Name: "Roof Rack", PricePerDay: 120},
	{ID: "dash_cam", Name: "Dash Cam", PricePerDay: 80},
	{ID: "wifi_hotspot", Name: "Wi-Fi Hotspot", PricePerDay: 90},
}

var insurances = []Insurance{
	{ID: "basic", Name: "Basic Cover", PricePerDay: 250},
	{ID: "standard", Name: "Standard Cover", PricePerDay: 350},
	{ID: "premium", Name: "Premium Cover", PricePerDay: 500},
}

// Accessories returns the full accessory catalog.
func Accessories() []Accessory {
	out := make([]Accessory, len(accessories))
	copy(out, accessories)
	return out
}

// AccessoryByID looks up one accessory.
func AccessoryByID(id string) (Accessory, bool) {
	for _, a := range accessories {
		if a.ID == id {
			return a, true
		}
	}
	return Accessory{}, false
}

// Insurances returns the full insurance catalog.
func Insurances() []Insurance {
	out := make([]Insurance, len(insurances))
	copy(out, insurances)
	return out
}

// InsuranceByID looks up one insurance cover.
func InsuranceByID(id string) (Insurance, bool) {
	for _, i := range insurances {
		if i.ID == id {
			return i, true
		}
	}
	return Insurance{}, false
}

// DefaultLocations is the built-in city list used when the backend's
// location lookup fails, so the rest of the flow stays usable.
func DefaultLocations() []model.Location {
	return []model.Location{
		{ID: "1", City: "New York", Code: "NYC"},
		{ID: "2", City: "Los Angeles", Code: "LAX"},
		{ID: "3", City: "Chicago", Code: "CHI"},
		{ID: "4", City: "Miami", Code: "MIA"},
		{ID: "5", City: "Seattle", Code: "SEA"},
		{ID: "6", City: "Denver", Code: "DEN"},
	}
}
