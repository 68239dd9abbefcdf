package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	requestRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/request"
	"github.com/m04kA/TLS-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/TLS-ScheduleService/pkg/ptr"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

type fakeRequestRepo struct {
	request *domain.BookingRequest
	list    []*domain.BookingRequest

	lastFilter domain.RequestsFilter
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ string) (*domain.BookingRequest, error) {
	if f.request == nil {
		return nil, requestRepo.ErrRequestNotFound
	}
	return f.request, nil
}

func (f *fakeRequestRepo) GetWithFilter(_ context.Context, filter domain.RequestsFilter) ([]*domain.BookingRequest, error) {
	f.lastFilter = filter
	return f.list, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func sampleRequest() *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:        "req-1",
		TutorID:   1,
		ClientID:  42,
		SlotDate:  time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(&fakeRequestRepo{request: sampleRequest()}, noopLogger{})

	resp, err := svc.GetByID(context.Background(), "req-1")

	require.NoError(t, err)
	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, noopLogger{})

	_, err := svc.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestList_ClientRole(t *testing.T) {
	repo := &fakeRequestRepo{list: []*domain.BookingRequest{sampleRequest()}}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.List(context.Background(), &models.ListRequest{Role: models.RoleClient, ID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.NotNil(t, repo.lastFilter.ClientID)
	assert.Equal(t, int64(42), *repo.lastFilter.ClientID)
	assert.Nil(t, repo.lastFilter.TutorID)
}

func TestList_ProviderRoleWithStatus(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := NewService(repo, noopLogger{})

	_, err := svc.List(context.Background(), &models.ListRequest{
		Role:   models.RoleProvider,
		ID:     1,
		Status: ptr.Ptr("accepted"),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.TutorID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusAccepted, *repo.lastFilter.Status)
}

func TestList_InvalidInput(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, noopLogger{})

	_, err := svc.List(context.Background(), &models.ListRequest{Role: "admin", ID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{Role: models.RoleClient, ID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{
		Role:   models.RoleClient,
		ID:     1,
		Status: ptr.Ptr("unknown"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
