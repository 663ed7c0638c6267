package model

// Reservation is the record assigned by the rental backend on a
// successful submission. The engine never synthesizes one locally.
type Reservation struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicleId"`
	Selection Selection `json:"selection"`
	TotalCost float64   `json:"totalCost"`
}
