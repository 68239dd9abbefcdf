package resolve_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resolveRequest "github.com/m04kA/TLS-ScheduleService/internal/usecase/resolve_request"
)

type fakeUseCase struct {
	resp *resolveRequest.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *resolveRequest.Request) (*resolveRequest.Response, error) {
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doResolve(t *testing.T, uc ResolveRequestUseCase) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, noopLogger{})
	body := `{"bookingId": "b-1", "action": "accept", "actorId": 10}`
	req := httptest.NewRequest(http.MethodPatch, "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestResolveBooking_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &resolveRequest.Response{ID: "b-1", Status: "accepted"}}

	rec := doResolve(t, uc)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestResolveBooking_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		// Нарушение статусной машины - ошибка клиента, а не конфликт состояния
		{"invalid transition", resolveRequest.ErrInvalidTransition, http.StatusBadRequest},
		{"slot full", resolveRequest.ErrSlotFull, http.StatusConflict},
		{"request not found", resolveRequest.ErrRequestNotFound, http.StatusNotFound},
		{"forbidden", resolveRequest.ErrForbidden, http.StatusForbidden},
		{"invalid input", resolveRequest.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doResolve(t, &fakeUseCase{err: tt.err})
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
