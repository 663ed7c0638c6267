// Package reservation holds the two stateless services around a
// confirmed booking: the submitter that creates it on the backend and
// the retriever that downloads its confirmation document.
package reservation

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/pricing"
	"github.com/roamdrive/rental-reservation-system/internal/remote"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// LocalValidationError is a precondition failure detected before any
// network call.
type LocalValidationError struct {
	Reason string
}

func (e *LocalValidationError) Error() string {
	return e.Reason
}

// Submitter turns a finalized selection into a create-reservation call
// and normalizes the outcome into a canonical Reservation. It keeps no
// state between calls.
type Submitter struct {
	client *remote.Client
}

// NewSubmitter creates a submitter over the backend client.
func NewSubmitter(client *remote.Client) *Submitter {
	return &Submitter{client: client}
}

// Submit creates the reservation. The date ordering is re-checked here
// even though the wizard already gates it: return must be strictly after
// pickup, or the call fails locally. The submitted total comes from the
// same pricing computation the wizard displays.
func (s *Submitter) Submit(ctx context.Context, vehicle *model.Vehicle, locations []model.Location, sel model.Selection) (*model.Reservation, error) {
	pickup, err := combineDateTime(sel.PickupDate, sel.PickupTime)
	if err != nil {
		return nil, &LocalValidationError{Reason: "pickup date is missing or invalid"}
	}
	ret, err := combineDateTime(sel.ReturnDate, sel.ReturnTime)
	if err != nil {
		return nil, &LocalValidationError{Reason: "return date is missing or invalid"}
	}
	if !ret.After(pickup) {
		return nil, &LocalValidationError{Reason: "return must be after pickup"}
	}

	total := pricing.Total(vehicle, sel)
	age, _ := strconv.Atoi(strings.TrimSpace(sel.Age))
	withDriver := sel.Driver == model.DriverWith

	payload := remote.CreateReservationRequest{
		VehicleID:        vehicle.ID,
		VehicleClass:     vehicle.Class,
		PickupLocationID: resolveLocation(locations, sel.PickupLocation),
		ReturnLocationID: resolveLocation(locations, sel.ReturnLocation),
		PickupDate:       sel.PickupDate,
		ReturnDate:       sel.ReturnDate,
		PickupTime:       sel.PickupTime,
		ReturnTime:       sel.ReturnTime,
		CustomerName:     strings.TrimSpace(sel.FullName),
		CustomerEmail:    strings.TrimSpace(sel.Email),
		CustomerPhone:    strings.TrimSpace(sel.Phone),
		CustomerAge:      age,
		DriverLicense:    strings.TrimSpace(sel.DriverLicense),
		Accessories:      sel.Accessories,
		InsuranceID:      sel.InsuranceID,
		WithDriver:       withDriver,
		WithDriverFlag:   boolToInt(withDriver),
		TotalCost:        total,
	}

	id, err := s.client.CreateReservation(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &model.Reservation{
		ID:        id,
		VehicleID: vehicle.ID,
		Selection: sel,
		TotalCost: total,
	}, nil
}

// resolveLocation matches the chosen city against the loaded location
// list. On a miss the raw value is passed through so the backend can
// attempt its own resolution.
func resolveLocation(locations []model.Location, city string) string {
	city = strings.TrimSpace(city)
	for _, loc := range locations {
		if strings.EqualFold(loc.City, city) {
			return loc.ID
		}
	}
	return city
}

func combineDateTime(date, clock string) (time.Time, error) {
	if clock != "" {
		if t, err := time.Parse(dateTimeLayout, date+" "+clock); err == nil {
			return t, nil
		}
	}
	return time.Parse(dateLayout, date)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
