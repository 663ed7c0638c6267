package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/roamdrive/rental-reservation-system/internal/model"
)

// vehiclePayload matches the backend's vehicle record. The features
// field is not uniform: it may be a JSON array or a single pre-escaped
// comma-joined string.
type vehiclePayload struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Class       string          `json:"class"`
	PricePerDay float64         `json:"price_per_day"`
	Features    json.RawMessage `json:"features"`
	Seats       int             `json:"seats"`
	Luggage     int             `json:"luggage"`
}

// Vehicle loads one vehicle record. A failure here is fatal to session
// start: the wizard cannot run over a missing vehicle.
func (c *Client) Vehicle(ctx context.Context, id string) (*model.Vehicle, error) {
	resp, err := c.get(ctx, "/vehicles/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var payload vehiclePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ResponseShapeError{Reason: "vehicle record is not valid JSON"}
	}
	if payload.ID == "" {
		return nil, &ResponseShapeError{Reason: "vehicle record has no id"}
	}

	return &model.Vehicle{
		ID:          payload.ID,
		Brand:       payload.Brand,
		Model:       payload.Model,
		Class:       payload.Class,
		PricePerDay: payload.PricePerDay,
		Features:    NormalizeFeatures(payload.Features),
		Seats:       payload.Seats,
		Luggage:     payload.Luggage,
	}, nil
}

// NormalizeFeatures decodes the backend's feature field into a clean
// ordered list. An array is taken as delivered. A string is unescaped
// (stray quotes and backslashes stripped), split on commas, each part
// trimmed, and empties dropped.
func NormalizeFeatures(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil
	}
	joined = strings.ReplaceAll(joined, `"`, "")
	joined = strings.ReplaceAll(joined, `\`, "")

	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
