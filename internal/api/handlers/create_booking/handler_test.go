package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/vitahub/VH-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.gotReq = req
	return m.resp, m.err
}

func doRequest(t *testing.T, uc *mockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/booking-links/{code}/bookings", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking-links/dr-smith/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"customerName": "Jane Doe",
	"customerEmail": "jane@example.com",
	"bookingDate": "2025-10-15",
	"startTime": "10:00"
}`

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{resp: &createBooking.Response{
		ID:              1,
		Reference:       "ref-123",
		OwnerID:         42,
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          "pending",
	}}

	rec := doRequest(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Код практиционера берётся из пути
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "dr-smith", uc.gotReq.BookingCode)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ref-123", resp.Reference)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "slot taken", err: createBooking.ErrSlotNotAvailable, wantCode: http.StatusConflict},
		{name: "practitioner not found", err: createBooking.ErrPractitionerNotFound, wantCode: http.StatusNotFound},
		{name: "non-working day", err: createBooking.ErrNonWorkingDay, wantCode: http.StatusBadRequest},
		{name: "past date", err: createBooking.ErrInvalidDate, wantCode: http.StatusBadRequest},
		{name: "off-grid time", err: createBooking.ErrInvalidTimeSlot, wantCode: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "internal error", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &mockUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandle_MalformedRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "broken json", body: `{`},
		{name: "bad date format", body: `{"customerName":"Jane","customerEmail":"jane@example.com","bookingDate":"15.10.2025","startTime":"10:00"}`},
		{name: "bad time format", body: `{"customerName":"Jane","customerEmail":"jane@example.com","bookingDate":"2025-10-15","startTime":"10am"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := doRequest(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// До use case такие запросы не доходят
			assert.Nil(t, uc.gotReq)
		})
	}
}
