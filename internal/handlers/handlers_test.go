package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/roamdrive/rental-reservation-system/internal/model"
	"github.com/roamdrive/rental-reservation-system/internal/pricing"
	"github.com/roamdrive/rental-reservation-system/internal/reservation"
	"github.com/roamdrive/rental-reservation-system/internal/service"
	"github.com/roamdrive/rental-reservation-system/internal/service/mocks"
	"github.com/roamdrive/rental-reservation-system/internal/wizard"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/locations", h.GetLocations).Methods(http.MethodGet)
	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.EndSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/selection", h.UpdateSelection).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{id}/advance", h.Advance).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/back", h.Back).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/quote", h.GetQuote).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/document", h.GetDocument).Methods(http.MethodGet)
	return r
}

func setup(t *testing.T) (*mocks.MockWizardService, http.Handler) {
	t.Helper()
	mockService := new(mocks.MockWizardService)
	h := NewHandler(mockService)
	return mockService, setupTestRouter(h)
}

func testSnapshot(step model.Step) *wizard.Snapshot {
	return &wizard.Snapshot{
		ID:      "sess-1",
		Step:    step,
		Vehicle: &model.Vehicle{ID: "veh-1", PricePerDay: 500},
		Quote:   pricing.Quote{Days: 1, Vehicle: 500, Total: 500},
	}
}

func TestHandler_CreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *wizard.Snapshot
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name:           "valid session creation",
			requestBody:    CreateSessionRequest{VehicleID: "veh-1"},
			mockReturn:     testSnapshot(model.StepRentalDetails),
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "missing vehicle id",
			requestBody:    CreateSessionRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "vehicle not found",
			requestBody:    CreateSessionRequest{VehicleID: "veh-404"},
			mockError:      service.ErrVehicleNotFound,
			expectedStatus: http.StatusNotFound,
			shouldCallMock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, r := setup(t)

			if tt.shouldCallMock {
				mockService.On("StartSession", mock.Anything, mock.AnythingOfType("string")).Return(tt.mockReturn, tt.mockError)
			}

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetSession(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *wizard.Snapshot
		mockError      error
		expectedStatus int
	}{
		{
			name:           "session found",
			mockReturn:     testSnapshot(model.StepConfirm),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "session not found",
			mockError:      wizard.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, r := setup(t)
			mockService.On("GetSession", mock.Anything, "sess-1").Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var snap wizard.Snapshot
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
				assert.Equal(t, model.StepConfirm, snap.Step)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_UpdateSelection(t *testing.T) {
	mockService, r := setup(t)
	mockService.On("UpdateSelection", mock.Anything, "sess-1", mock.AnythingOfType("model.Selection")).Return(testSnapshot(model.StepRentalDetails), nil)

	body, _ := json.Marshal(model.Selection{PickupLocation: "New York"})
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/sess-1/selection", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_Advance(t *testing.T) {
	tests := []struct {
		name           string
		mockReturn     *service.AdvanceResult
		mockError      error
		expectedStatus int
	}{
		{
			name:           "advanced",
			mockReturn:     &service.AdvanceResult{Session: testSnapshot(model.StepCustomerInfo)},
			expectedStatus: http.StatusOK,
		},
		{
			name: "submission failed, still ok with message",
			mockReturn: &service.AdvanceResult{
				Session:     testSnapshot(model.StepConfirm),
				SubmitError: "vehicle already booked",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "session not found",
			mockError:      wizard.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "submission already in flight",
			mockError:      wizard.ErrSubmissionInFlight,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, r := setup(t)
			mockService.On("Advance", mock.Anything, "sess-1").Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/advance", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockReturn != nil && tt.mockReturn.SubmitError != "" {
				var result service.AdvanceResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
				assert.Equal(t, tt.mockReturn.SubmitError, result.SubmitError)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_Back(t *testing.T) {
	mockService, r := setup(t)
	mockService.On("Back", mock.Anything, "sess-1").Return(testSnapshot(model.StepRentalDetails), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/sess-1/back", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_GetQuote(t *testing.T) {
	mockService, r := setup(t)
	mockService.On("Quote", mock.Anything, "sess-1").Return(&pricing.Quote{Days: 2, Vehicle: 1000, Accessories: 300, Total: 1300}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/quote", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var quote pricing.Quote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&quote))
	assert.Equal(t, 1300.0, quote.Total)
	mockService.AssertExpectations(t)
}

func TestHandler_EndSession(t *testing.T) {
	tests := []struct {
		name           string
		mockError      error
		expectedStatus int
	}{
		{name: "ended", expectedStatus: http.StatusOK},
		{name: "not found", mockError: wizard.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, r := setup(t)
			mockService.On("EndSession", mock.Anything, "sess-1").Return(tt.mockError)

			req := httptest.NewRequest(http.MethodDelete, "/api/sessions/sess-1", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetLocations(t *testing.T) {
	mockService, r := setup(t)
	mockService.On("Locations", mock.Anything).Return([]model.Location{{ID: "1", City: "New York", Code: "NYC"}})

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var locations []model.Location
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&locations))
	require.Len(t, locations, 1)
	assert.Equal(t, "New York", locations[0].City)
	mockService.AssertExpectations(t)
}

func TestHandler_GetDocument(t *testing.T) {
	tests := []struct {
		name           string
		filename       string
		data           []byte
		mockError      error
		expectedStatus int
	}{
		{
			name:           "document downloaded",
			filename:       "reservation-R1.pdf",
			data:           []byte("%PDF-1.4"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no reservation yet",
			mockError:      &reservation.DownloadError{Kind: reservation.DownloadMissingID},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "document gone upstream",
			mockError:      &reservation.DownloadError{Kind: reservation.DownloadRejected, Status: http.StatusNotFound},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "backend unreachable",
			mockError:      &reservation.DownloadError{Kind: reservation.DownloadNoResponse},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, r := setup(t)
			mockService.On("Document", mock.Anything, "sess-1").Return(tt.filename, tt.data, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/sessions/sess-1/document", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("Content-Disposition"), tt.filename)
				assert.Equal(t, tt.data, rec.Body.Bytes())
			}
			mockService.AssertExpectations(t)
		})
	}
}
