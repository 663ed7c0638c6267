// Package pricing computes rental quotes. Everything here is pure: a
// quote is always re-derived from its inputs and never cached, so the
// total shown on any step cannot diverge from the total submitted.
package pricing

import (
	"math"
	"time"

	"github.com/roamdrive/rental-reservation-system/internal/catalog"
	"github.com/roamdrive/rental-reservation-system/internal/model"
)

const dateLayout = "2006-01-02"

// Quote is an itemized price for a selection.
type Quote struct {
	Days        int     `json:"days"`
	Vehicle     float64 `json:"vehicle"`
	Accessories float64 `json:"accessories"`
	Insurance   float64 `json:"insurance"`
	Driver      float64 `json:"driver"`
	Total       float64 `json:"total"`
}

// Days returns the billable day count for a rental window:
// max(1, ceil(calendar-day difference)). Times are excluded, so a span
// that stays within one calendar day bills a single day.
func Days(pickup, ret time.Time) int {
	diff := ret.Sub(pickup).Hours() / 24
	days := int(math.Ceil(diff))
	if days < 1 {
		return 1
	}
	return days
}

// Compute derives the quote for a selection. Without a parseable rental
// window it returns the vehicle's bare per-day price as a single-day
// preview. Unknown accessory or insurance ids contribute zero.
func Compute(vehicle *model.Vehicle, sel model.Selection) Quote {
	pickup, pickupErr := time.Parse(dateLayout, sel.PickupDate)
	ret, retErr := time.Parse(dateLayout, sel.ReturnDate)
	if pickupErr != nil || retErr != nil {
		return Quote{Days: 1, Vehicle: vehicle.PricePerDay, Total: vehicle.PricePerDay}
	}

	days := Days(pickup, ret)
	q := Quote{Days: days, Vehicle: float64(days) * vehicle.PricePerDay}

	for _, id := range sel.Accessories {
		if acc, ok := catalog.AccessoryByID(id); ok {
			q.Accessories += float64(days) * acc.PricePerDay
		}
	}
	if sel.InsuranceID != "" {
		if ins, ok := catalog.InsuranceByID(sel.InsuranceID); ok {
			q.Insurance = float64(days) * ins.PricePerDay
		}
	}
	if sel.Driver == model.DriverWith {
		q.Driver = float64(days) * catalog.DriverSurchargePerDay
	}

	q.Total = q.Vehicle + q.Accessories + q.Insurance + q.Driver
	return q
}

// Total is a shorthand for Compute(...).Total.
func Total(vehicle *model.Vehicle, sel model.Selection) float64 {
	return Compute(vehicle, sel).Total
}
