package resolve_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	requestRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/request"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

type fakeSlotRepo struct {
	slot *domain.TimeSlot
	err  error
}

func (f *fakeSlotRepo) GetByKey(_ context.Context, _ domain.SlotKey) (*domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

type fakeRequestRepo struct {
	request       *domain.BookingRequest
	getErr        error
	acceptedCount int

	updatedStatus     *domain.RequestStatus
	cancelled         bool
	conflictsDeclined int64
	declineCalled     bool
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ string) (*domain.BookingRequest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.request, nil
}

func (f *fakeRequestRepo) CountBySlotAndStatus(_ context.Context, _ domain.SlotKey, _ domain.RequestStatus) (int, error) {
	return f.acceptedCount, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, _ string, status domain.RequestStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeRequestRepo) Cancel(_ context.Context, _ string) error {
	f.cancelled = true
	return nil
}

func (f *fakeRequestRepo) DeclineConflicts(_ context.Context, _ domain.SlotKey, _ string) (int64, error) {
	f.declineCalled = true
	return f.conflictsDeclined, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func pendingRequest() *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:        "req-1",
		TutorID:   1,
		ClientID:  42,
		SlotDate:  time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		Status:    domain.StatusPending,
	}
}

func individualSlot() *domain.TimeSlot {
	return &domain.TimeSlot{
		TutorID:   1,
		Date:      time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		Capacity:  1,
	}
}

func newTestUseCase(slots *fakeSlotRepo, requests *fakeRequestRepo) *UseCase {
	return NewUseCase(slots, requests, &fakeTxManager{}, noopLogger{})
}

func TestResolveRequest_AcceptDeclinesCompetitors(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest(), conflictsDeclined: 2}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionAccept,
		ActorID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.Equal(t, int64(2), resp.ConflictsDeclined)
	require.NotNil(t, requests.updatedStatus)
	assert.Equal(t, domain.StatusAccepted, *requests.updatedStatus)
	assert.True(t, requests.declineCalled)
}

func TestResolveRequest_AcceptGroupSlotKeepsCompetitors(t *testing.T) {
	slot := individualSlot()
	slot.Capacity = 4
	requests := &fakeRequestRepo{request: pendingRequest(), acceptedCount: 2}
	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, requests)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionAccept,
		ActorID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAccepted), resp.Status)
	assert.False(t, requests.declineCalled)
}

func TestResolveRequest_AcceptFullSlot(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest(), acceptedCount: 1}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionAccept,
		ActorID:   1,
	})

	require.ErrorIs(t, err, ErrSlotFull)
	assert.Nil(t, requests.updatedStatus)
}

func TestResolveRequest_AcceptByWrongActor(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest()}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionAccept,
		ActorID:   999,
	})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestResolveRequest_AcceptTerminalStatus(t *testing.T) {
	for _, status := range []domain.RequestStatus{
		domain.StatusDeclinedConflict,
		domain.StatusExpired,
		domain.StatusCancelled,
		domain.StatusAccepted,
		domain.StatusPendingUnavailable,
	} {
		t.Run(string(status), func(t *testing.T) {
			req := pendingRequest()
			req.Status = status
			uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, &fakeRequestRepo{request: req})

			_, err := uc.Execute(context.Background(), &Request{
				RequestID: "req-1",
				Action:    ActionAccept,
				ActorID:   1,
			})

			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestResolveRequest_Decline(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest()}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionDecline,
		ActorID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDeclined), resp.Status)
	require.NotNil(t, requests.updatedStatus)
	assert.Equal(t, domain.StatusDeclined, *requests.updatedStatus)
}

func TestResolveRequest_CancelByClient(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest()}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionCancel,
		ActorID:   42,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.True(t, requests.cancelled)
}

func TestResolveRequest_CancelAcceptedByTutor(t *testing.T) {
	req := pendingRequest()
	req.Status = domain.StatusAccepted
	requests := &fakeRequestRepo{request: req}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionCancel,
		ActorID:   1,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestResolveRequest_CancelByStranger(t *testing.T) {
	requests := &fakeRequestRepo{request: pendingRequest()}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    ActionCancel,
		ActorID:   777,
	})

	require.ErrorIs(t, err, ErrForbidden)
}

func TestResolveRequest_NotFound(t *testing.T) {
	requests := &fakeRequestRepo{getErr: requestRepo.ErrRequestNotFound}
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, requests)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID: "missing",
		Action:    ActionAccept,
		ActorID:   1,
	})

	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestResolveRequest_UnknownAction(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{slot: individualSlot()}, &fakeRequestRepo{request: pendingRequest()})

	_, err := uc.Execute(context.Background(), &Request{
		RequestID: "req-1",
		Action:    Action("promote"),
		ActorID:   1,
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}
