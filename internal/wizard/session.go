// Package wizard implements the step-gated reservation state machine.
// A Session is created when a flow starts and closed when it ends; a
// reservation id never survives from one session into the next.
package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/pricing"
	"github.com/roamdrive/rental-reservation-system/internal/validate"
)

var (
	// ErrSubmissionInFlight rejects a second submission while one is
	// still running. One submission per session at a time.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrSessionClosed marks operations on a torn-down session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrAlreadyConfirmed marks mutations after the terminal step.
	ErrAlreadyConfirmed = errors.New("session is already confirmed")
)

// Submitter creates the reservation on the rental backend.
type Submitter interface {
	Submit(ctx context.Context, vehicle *model.Vehicle, locations []model.Location, sel model.Selection) (*model.Reservation, error)
}

// Session owns the state of one reservation flow. All mutations go
// through its methods; callers only ever see snapshots.
type Session struct {
	mu            sync.Mutex
	id            string
	vehicle       *model.Vehicle
	locations     []model.Location
	step          model.Step
	sel           model.Selection
	fieldErrors   validate.ErrorMap
	reservationID string
	submitting    bool
	closed        bool
}

// Snapshot is a read-only view of a session at a point in time. The
// quote is recomputed from the current selection on every snapshot.
type Snapshot struct {
	ID            string            `json:"id"`
	Step          model.Step        `json:"step"`
	Vehicle       *model.Vehicle    `json:"vehicle"`
	Locations     []model.Location  `json:"locations"`
	Selection     model.Selection   `json:"selection"`
	Errors        validate.ErrorMap `json:"errors"`
	Quote         pricing.Quote     `json:"quote"`
	ReservationID string            `json:"reservationId,omitempty"`
}

// New starts a session on the rental_details step. A fresh session
// always begins with an empty reservation id.
func New(id string, vehicle *model.Vehicle, locations []model.Location) *Session {
	return &Session{
		id:          id,
		vehicle:     vehicle,
		locations:   locations,
		step:        model.StepRentalDetails,
		sel:         model.Selection{Driver: model.DriverSelf},
		fieldErrors: validate.ErrorMap{},
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// UpdateSelection replaces the session's selection wholesale. Accessory
// ids are deduplicated; an unset driver choice defaults to self-drive.
func (s *Session) UpdateSelection(sel model.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.step == model.StepConfirmed {
		return ErrAlreadyConfirmed
	}
	if sel.Driver == "" {
		sel.Driver = model.DriverSelf
	}
	sel.Accessories = dedupe(sel.Accessories)
	s.sel = sel
	return nil
}

// Advance validates the current step and moves forward one step. From
// the confirm step it submits the reservation instead: on success the
// session becomes confirmed and carries the returned reservation id; on
// failure it stays on confirm and the error is returned alongside the
// unchanged snapshot.
func (s *Session) Advance(ctx context.Context, submitter Submitter) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrSessionClosed
	}

	switch s.step {
	case model.StepRentalDetails, model.StepCustomerInfo:
		errs := validate.ForStep(s.step, s.sel)
		s.fieldErrors = errs
		if len(errs) == 0 {
			if s.step == model.StepRentalDetails {
				s.step = model.StepCustomerInfo
			} else {
				s.step = model.StepConfirm
			}
		}
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil

	case model.StepConfirm:
		if s.submitting {
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, ErrSubmissionInFlight
		}
		s.submitting = true
		vehicle, locations, sel := s.vehicle, s.locations, s.sel
		s.mu.Unlock()

		res, err := submitter.Submit(ctx, vehicle, locations, sel)

		s.mu.Lock()
		s.submitting = false
		if s.closed {
			// The session was torn down while the request was in
			// flight; its result must not reach a later session.
			s.mu.Unlock()
			return Snapshot{}, ErrSessionClosed
		}
		if err != nil {
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, err
		}
		s.reservationID = res.ID
		s.step = model.StepConfirmed
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil

	default:
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrAlreadyConfirmed
	}
}

// Back returns to the previous step. It is always permitted and never
// re-validates or discards entered data.
func (s *Session) Back() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case model.StepCustomerInfo:
		s.step = model.StepRentalDetails
	case model.StepConfirm:
		s.step = model.StepCustomerInfo
	}
	return s.snapshotLocked()
}

// Quote recomputes the price for the current selection.
func (s *Session) Quote() pricing.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Compute(s.vehicle, s.sel)
}

// ReservationID returns the id assigned on confirmation, or "" before
// that and after Close.
func (s *Session) ReservationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservationID
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close tears the session down. Clearing the reservation id here is
// mandatory: a later session must never observe it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.reservationID = ""
	s.fieldErrors = validate.ErrorMap{}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:            s.id,
		Step:          s.step,
		Vehicle:       s.vehicle,
		Locations:     s.locations,
		Selection:     s.sel,
		Errors:        s.fieldErrors,
		Quote:         pricing.Compute(s.vehicle, s.sel),
		ReservationID: s.reservationID,
	}
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
