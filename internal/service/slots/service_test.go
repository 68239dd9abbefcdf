package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/ptr"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

type fakeSlotRepo struct {
	slots []*domain.TimeSlot

	deletedTutor int64
	deletedFrom  time.Time
	deletedTo    time.Time
	upserted     []*domain.TimeSlot
	callOrder    []string
}

func (f *fakeSlotRepo) Upsert(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	f.callOrder = append(f.callOrder, "upsert")
	f.upserted = append(f.upserted, slot)
	return slot, nil
}

func (f *fakeSlotRepo) GetByKey(_ context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	for _, slot := range f.slots {
		if slot.Key() == key {
			return slot, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) GetWithFilter(_ context.Context, _ domain.SlotsFilter) ([]*domain.TimeSlot, error) {
	return f.slots, nil
}

func (f *fakeSlotRepo) DeleteUnbookedForTutor(_ context.Context, tutorID int64, from, to time.Time) (int64, error) {
	f.callOrder = append(f.callOrder, "delete")
	f.deletedTutor = tutorID
	f.deletedFrom = from
	f.deletedTo = to
	return 0, nil
}

type fakeRequestRepo struct {
	bySlot map[string]int
}

func (f *fakeRequestRepo) CountActiveBySlot(_ context.Context, key domain.SlotKey) (int, error) {
	return f.bySlot[domain.OccupancyKey(key)], nil
}

func (f *fakeRequestRepo) CountActiveBySlots(_ context.Context, tutorID int64, _ *time.Time) (map[string]int, error) {
	return f.bySlot, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func slot(tutorID int64, day int, start string, capacity int) *domain.TimeSlot {
	return &domain.TimeSlot{
		TutorID:         tutorID,
		Date:            time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		DurationMinutes: 60,
		LessonType:      domain.LessonGroup,
		Location:        domain.LocationOnSite,
		Modality:        domain.ModalityInPerson,
		Capacity:        capacity,
	}
}

func newTestService(slotRepo *fakeSlotRepo, requestRepo *fakeRequestRepo, now time.Time) *Service {
	svc := NewService(slotRepo, requestRepo, &fakeTxManager{}, noopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestQuery_ComputesOccupancy(t *testing.T) {
	s1 := slot(1, 15, "10:00", 4)
	s2 := slot(1, 15, "11:00", 4)
	repo := &fakeSlotRepo{slots: []*domain.TimeSlot{s1, s2}}
	requests := &fakeRequestRepo{bySlot: map[string]int{
		domain.OccupancyKey(s1.Key()): 3,
	}}
	svc := newTestService(repo, requests, time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC))

	views, err := svc.Query(context.Background(), domain.SlotsFilter{TutorID: ptr.Ptr(int64(1))})

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].AvailableSpots)
	assert.True(t, views[0].Available)
	assert.Equal(t, 4, views[1].AvailableSpots)
}

func TestQuery_AvailableOnlyFiltersFullAndPast(t *testing.T) {
	full := slot(1, 15, "10:00", 1)
	past := slot(1, 1, "09:00", 4) // 1 сентября уже прошло к 12:00
	free := slot(1, 15, "11:00", 4)
	repo := &fakeSlotRepo{slots: []*domain.TimeSlot{full, past, free}}
	requests := &fakeRequestRepo{bySlot: map[string]int{
		domain.OccupancyKey(full.Key()): 1,
	}}
	svc := newTestService(repo, requests, time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC))

	views, err := svc.Query(context.Background(), domain.SlotsFilter{
		TutorID:       ptr.Ptr(int64(1)),
		AvailableOnly: true,
	})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "11:00", views[0].StartTime)
}

func TestReplaceForTutor_DeletesBeforeUpsert(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo, &fakeRequestRepo{}, time.Now())

	horizonStart := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	newSlots := []*domain.TimeSlot{
		slot(1, 7, "10:00", 1),
		slot(1, 7, "11:00", 1),
	}

	count, err := svc.ReplaceForTutor(context.Background(), 1, newSlots, horizonStart, 90)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.GreaterOrEqual(t, len(repo.callOrder), 3)
	assert.Equal(t, "delete", repo.callOrder[0])
	assert.Equal(t, int64(1), repo.deletedTutor)
	assert.Equal(t, horizonStart, repo.deletedFrom)
	assert.Equal(t, horizonStart.AddDate(0, 0, 89), repo.deletedTo)
	assert.Len(t, repo.upserted, 2)
}

func TestReplaceForTutor_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, &fakeRequestRepo{}, time.Now())

	_, err := svc.ReplaceForTutor(context.Background(), 0, nil, time.Now(), 90)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ReplaceForTutor(context.Background(), 1, nil, time.Now(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
