package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/pricing"
	"github.com/roamdrive/rental-reservation-system/internal/remote"
	"github.com/roamdrive/rental-reservation-system/internal/reservation"
	"github.com/roamdrive/rental-reservation-system/internal/wizard"
)

// ErrVehicleNotFound means the session's vehicle could not be loaded.
// The flow cannot start without one.
var ErrVehicleNotFound = errors.New("vehicle not found")

// AdvanceResult is the outcome of one advance attempt. SubmitError is
// only set when the confirm step's submission failed; the session then
// remains on confirm.
type AdvanceResult struct {
	Session     *wizard.Snapshot `json:"session"`
	SubmitError string           `json:"submitError,omitempty"`
}

// WizardService drives reservation wizard sessions.
type WizardService interface {
	StartSession(ctx context.Context, vehicleID string) (*wizard.Snapshot, error)
	GetSession(ctx context.Context, sessionID string) (*wizard.Snapshot, error)
	UpdateSelection(ctx context.Context, sessionID string, sel model.Selection) (*wizard.Snapshot, error)
	Advance(ctx context.Context, sessionID string) (*AdvanceResult, error)
	Back(ctx context.Context, sessionID string) (*wizard.Snapshot, error)
	EndSession(ctx context.Context, sessionID string) error
	Quote(ctx context.Context, sessionID string) (*pricing.Quote, error)
	Locations(ctx context.Context) []model.Location
	Document(ctx context.Context, sessionID string) (string, []byte, error)
}

// wizardServiceImpl implements WizardService over the backend client
// and the in-memory session registry.
type wizardServiceImpl struct {
	client    *remote.Client
	sessions  *wizard.Manager
	submitter wizard.Submitter
	retriever *reservation.Retriever
	logger    zerolog.Logger
}

// NewWizardService creates the service. The saver receives downloaded
// confirmation documents; nil skips local saving.
func NewWizardService(client *remote.Client, saver reservation.FileSaver, logger zerolog.Logger) WizardService {
	return &wizardServiceImpl{
		client:    client,
		sessions:  wizard.NewManager(),
		submitter: reservation.NewSubmitter(client),
		retriever: reservation.NewRetriever(client, saver),
		logger:    logger,
	}
}

// StartSession loads the vehicle and location list and opens a fresh
// session. A vehicle-load failure is fatal; a location failure is not —
// the client already falls back to the default city list.
func (s *wizardServiceImpl) StartSession(ctx context.Context, vehicleID string) (*wizard.Snapshot, error) {
	vehicle, err := s.client.Vehicle(ctx, vehicleID)
	if err != nil {
		s.logger.Error().Err(err).Str("vehicleId", vehicleID).Msg("vehicle load failed")
		return nil, ErrVehicleNotFound
	}

	locations := s.client.Locations(ctx)

	sessionID := uuid.New().String()[:8]
	sess := wizard.New(sessionID, vehicle, locations)
	s.sessions.Put(sess)

	s.logger.Info().Str("sessionId", sessionID).Str("vehicleId", vehicleID).Msg("session started")
	snap := sess.Snapshot()
	return &snap, nil
}

func (s *wizardServiceImpl) GetSession(ctx context.Context, sessionID string) (*wizard.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	return &snap, nil
}

func (s *wizardServiceImpl) UpdateSelection(ctx context.Context, sessionID string, sel model.Selection) (*wizard.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.UpdateSelection(sel); err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	return &snap, nil
}

// Advance moves the session forward. Submission failures come back as a
// user-facing message on the result, not as an error: the session state
// is still valid and still on the confirm step.
func (s *wizardServiceImpl) Advance(ctx context.Context, sessionID string) (*AdvanceResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	snap, err := sess.Advance(ctx, s.submitter)
	if err != nil {
		if errors.Is(err, wizard.ErrSubmissionInFlight) ||
			errors.Is(err, wizard.ErrSessionClosed) ||
			errors.Is(err, wizard.ErrAlreadyConfirmed) {
			return nil, err
		}
		s.logger.Warn().Err(err).Str("sessionId", sessionID).Msg("reservation submission failed")
		return &AdvanceResult{Session: &snap, SubmitError: submitMessage(err)}, nil
	}

	if snap.Step == model.StepConfirmed {
		s.logger.Info().Str("sessionId", sessionID).Str("reservationId", snap.ReservationID).Msg("reservation confirmed")
	}
	return &AdvanceResult{Session: &snap}, nil
}

func (s *wizardServiceImpl) Back(ctx context.Context, sessionID string) (*wizard.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Back()
	return &snap, nil
}

func (s *wizardServiceImpl) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Remove(sessionID)
}

func (s *wizardServiceImpl) Quote(ctx context.Context, sessionID string) (*pricing.Quote, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	q := sess.Quote()
	return &q, nil
}

func (s *wizardServiceImpl) Locations(ctx context.Context) []model.Location {
	return s.client.Locations(ctx)
}

// Document downloads the confirmation document for the session's own
// reservation id. Before confirmation the id is empty and the retriever
// rejects the call without touching the network.
func (s *wizardServiceImpl) Document(ctx context.Context, sessionID string) (string, []byte, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", nil, err
	}
	return s.retriever.Fetch(ctx, sess.ReservationID())
}

// submitMessage picks the single user-facing message for a failed
// submission, preferring server-supplied text.
func submitMessage(err error) string {
	var local *reservation.LocalValidationError
	if errors.As(err, &local) {
		return local.Reason
	}
	var srv *remote.ServerError
	if errors.As(err, &srv) {
		if srv.Message != "" {
			return srv.Message
		}
		return "The reservation could not be created. Please try again."
	}
	var netErr *remote.NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the reservation service. Check your connection and try again."
	}
	var shape *remote.ResponseShapeError
	if errors.As(err, &shape) {
		return "The reservation service returned an unexpected response."
	}
	return "The reservation could not be created. Please try again."
}
