package remote

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/roamdrive/rental-reservation-system/internal/catalog"
	"github.com/roamdrive/rental-reservation-system/internal/model"
)

// Locations returns the pickup/return city list. Any failure substitutes
// the built-in default cities so the rest of the flow stays usable.
func (c *Client) Locations(ctx context.Context) []model.Location {
	resp, err := c.get(ctx, "/locations")
	if err != nil {
		return catalog.DefaultLocations()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return catalog.DefaultLocations()
	}

	var locations []model.Location
	if err := json.NewDecoder(resp.Body).Decode(&locations); err != nil || len(locations) == 0 {
		return catalog.DefaultLocations()
	}
	return locations
}
