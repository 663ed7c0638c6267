package model

// Vehicle is a rentable vehicle as served by the rental backend. It is
// loaded once per session and read-only afterwards.
type Vehicle struct {
	ID          string   `json:"id"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Class       string   `json:"class"`
	PricePerDay float64  `json:"pricePerDay"`
	Features    []string `json:"features"`
	Seats       int      `json:"seats"`
	Luggage     int      `json:"luggage"`
}

// Location is a pickup/return city offered by the backend.
type Location struct {
	ID   string `json:"id"`
	City string `json:"city"`
	Code string `json:"code"`
}
