package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/pricing"
	"github.com/roamdrive/rental-reservation-system/internal/service"
	"github.com/roamdrive/rental-reservation-system/internal/wizard"
)

// MockWizardService is a mock implementation of service.WizardService.
type MockWizardService struct {
	mock.Mock
}

func (m *MockWizardService) StartSession(ctx context.Context, vehicleID string) (*wizard.Snapshot, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Snapshot), args.Error(1)
}

func (m *MockWizardService) GetSession(ctx context.Context, sessionID string) (*wizard.Snapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Snapshot), args.Error(1)
}

func (m *MockWizardService) UpdateSelection(ctx context.Context, sessionID string, sel model.Selection) (*wizard.Snapshot, error) {
	args := m.Called(ctx, sessionID, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Snapshot), args.Error(1)
}

func (m *MockWizardService) Advance(ctx context.Context, sessionID string) (*service.AdvanceResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdvanceResult), args.Error(1)
}

func (m *MockWizardService) Back(ctx context.Context, sessionID string) (*wizard.Snapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wizard.Snapshot), args.Error(1)
}

func (m *MockWizardService) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockWizardService) Quote(ctx context.Context, sessionID string) (*pricing.Quote, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockWizardService) Locations(ctx context.Context) []model.Location {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Location)
}

func (m *MockWizardService) Document(ctx context.Context, sessionID string) (string, []byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}
