package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

// CreateReservationRequest is the create payload. The backend contract
// historically requires the driver choice both as a boolean and as an
// integer flag; both are always sent.
type CreateReservationRequest struct {
	VehicleID        string   `json:"vehicle_id"`
	VehicleClass     string   `json:"vehicle_class"`
	PickupLocationID string   `json:"pickup_location_id"`
	ReturnLocationID string   `json:"return_location_id"`
	PickupDate       string   `json:"pickup_date"`
	ReturnDate       string   `json:"return_date"`
	PickupTime       string   `json:"pickup_time"`
	ReturnTime       string   `json:"return_time"`
	CustomerName     string   `json:"customer_name"`
	CustomerEmail    string   `json:"customer_email"`
	CustomerPhone    string   `json:"customer_phone"`
	CustomerAge      int      `json:"customer_age"`
	DriverLicense    string   `json:"driver_license,omitempty"`
	Accessories      []string `json:"accessories"`
	InsuranceID      string   `json:"insurance_id,omitempty"`
	WithDriver       bool     `json:"with_driver"`
	WithDriverFlag   int      `json:"with_driver_flag"`
	TotalCost        float64  `json:"total_cost"`
}

// CreateReservation submits the payload and resolves the assigned
// reservation id from the backend's response.
func (c *Client) CreateReservation(ctx context.Context, payload CreateReservationRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode reservation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reservations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", serverError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", &ResponseShapeError{Reason: "reading response body"}
	}
	return ExtractReservationID(raw)
}

// Document fetches the binary confirmation document for a reservation.
func (c *Client) Document(ctx context.Context, reservationID string) ([]byte, error) {
	resp, err := c.get(ctx, "/reservations/"+url.PathEscape(reservationID)+"/document")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseShapeError{Reason: "reading document body"}
	}
	return data, nil
}
