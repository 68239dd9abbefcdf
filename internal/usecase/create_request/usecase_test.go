package create_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/slot"
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
	created       *domain.BookingRequest
	acceptedCount int
	duplicate     bool
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	f.created = req
	return req, nil
}

func (f *fakeRequestRepo) CountBySlotAndStatus(_ context.Context, _ domain.SlotKey, _ domain.RequestStatus) (int, error) {
	return f.acceptedCount, nil
}

func (f *fakeRequestRepo) HasActiveDuplicate(_ context.Context, _ domain.SlotKey, _ int64, _ *int64) (bool, error) {
	return f.duplicate, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	created []*domain.BookingRequest
}

func (f *fakeNotifier) RequestCreated(req *domain.BookingRequest) {
	f.created = append(f.created, req)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func futureSlot(capacity int) *domain.TimeSlot {
	return &domain.TimeSlot{
		TutorID:         1,
		Date:            time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		LessonType:      domain.LessonIndividual,
		Location:        domain.LocationOnSite,
		Modality:        domain.ModalityInPerson,
		Capacity:        capacity,
	}
}

func validRequest() *Request {
	return &Request{
		TutorID:   1,
		ClientID:  42,
		Date:      time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func newTestUseCase(slots *fakeSlotRepo, requests *fakeRequestRepo, notifier *fakeNotifier) *UseCase {
	uc := NewUseCase(slots, requests, &fakeTxManager{}, notifier, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestCreateRequest_Pending(t *testing.T) {
	requests := &fakeRequestRepo{}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(&fakeSlotRepo{slot: futureSlot(1)}, requests, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.NotEmpty(t, resp.ID)
	require.NotNil(t, requests.created)
	assert.Equal(t, domain.StatusPending, requests.created.Status)
	require.Len(t, notifier.created, 1)
}

func TestCreateRequest_FullSlotQueuedAsUnavailable(t *testing.T) {
	requests := &fakeRequestRepo{acceptedCount: 1}
	uc := newTestUseCase(&fakeSlotRepo{slot: futureSlot(1)}, requests, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingUnavailable), resp.Status)
}

func TestCreateRequest_GroupSlotWithFreeSpots(t *testing.T) {
	requests := &fakeRequestRepo{acceptedCount: 3}
	uc := newTestUseCase(&fakeSlotRepo{slot: futureSlot(4)}, requests, &fakeNotifier{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestCreateRequest_SlotNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{err: slotRepo.ErrSlotNotFound}, &fakeRequestRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateRequest_SlotInPast(t *testing.T) {
	slot := futureSlot(1)
	slot.Date = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	req := validRequest()
	req.Date = slot.Date

	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeRequestRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrSlotInPast)
}

func TestCreateRequest_Duplicate(t *testing.T) {
	notifier := &fakeNotifier{}
	uc := newTestUseCase(&fakeSlotRepo{slot: futureSlot(1)}, &fakeRequestRepo{duplicate: true}, notifier)

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Empty(t, notifier.created)
}

func TestCreateRequest_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{slot: futureSlot(1)}, &fakeRequestRepo{}, &fakeNotifier{})

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero tutor", func(r *Request) { r.TutorID = 0 }},
		{"zero client", func(r *Request) { r.ClientID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty time", func(r *Request) { r.StartTime = "" }},
		{"bad time", func(r *Request) { r.StartTime = types.TimeString("25:99") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
