// Package validate holds the per-step form rules of the reservation
// wizard. Validation runs on each advance attempt, not on keystrokes.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roamdrive/rental-reservation-system/internal/model"
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrorMap maps a form field name to a human-readable message. A field
// absent from the map is valid; a step may only advance when its map is
// empty.
type ErrorMap map[string]string

// ForStep runs the rules for one wizard step against the selection.
// The confirm step adds no rules of its own: its gate is that the prior
// steps already passed.
func ForStep(step model.Step, sel model.Selection) ErrorMap {
	errs := ErrorMap{}
	switch step {
	case model.StepRentalDetails:
		rentalDetails(sel, errs)
	case model.StepCustomerInfo:
		customerInfo(sel, errs)
	}
	return errs
}

func rentalDetails(sel model.Selection, errs ErrorMap) {
	require(errs, "pickupLocation", sel.PickupLocation, "Pickup location is required")
	require(errs, "returnLocation", sel.ReturnLocation, "Return location is required")
	require(errs, "pickupDate", sel.PickupDate, "Pickup date is required")
	require(errs, "returnDate", sel.ReturnDate, "Return date is required")
	require(errs, "pickupTime", sel.PickupTime, "Pickup time is required")
	require(errs, "returnTime", sel.ReturnTime, "Return time is required")

	if sel.PickupDate == "" || sel.ReturnDate == "" {
		return
	}
	pickup, pickupErr := time.Parse(dateLayout, sel.PickupDate)
	ret, retErr := time.Parse(dateLayout, sel.ReturnDate)
	if pickupErr != nil {
		errs["pickupDate"] = "Pickup date is invalid"
	}
	if retErr != nil {
		errs["returnDate"] = "Return date is invalid"
	}
	if pickupErr == nil && retErr == nil && pickup.After(ret) {
		errs["returnDate"] = "Return date must not be before the pickup date"
	}
}

func customerInfo(sel model.Selection, errs ErrorMap) {
	require(errs, "fullName", sel.FullName, "Full name is required")
	require(errs, "phone", sel.Phone, "Phone number is required")

	email := strings.TrimSpace(sel.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email address is invalid"
	}

	age := strings.TrimSpace(sel.Age)
	if age == "" {
		errs["age"] = "Age is required"
	} else if n, err := strconv.Atoi(age); err != nil {
		errs["age"] = "Age must be a number"
	} else if n < 18 || n > 100 {
		errs["age"] = "Age must be between 18 and 100"
	}

	// A license is only needed when the customer drives the vehicle.
	if sel.Driver != model.DriverWith && strings.TrimSpace(sel.DriverLicense) == "" {
		errs["driverLicense"] = "Driver license number is required for self-drive rentals"
	}
}

func require(errs ErrorMap, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}
