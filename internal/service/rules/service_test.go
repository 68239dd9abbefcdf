package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	ruleRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/rule"
	"github.com/m04kA/TLS-ScheduleService/internal/service/rules/models"
	"github.com/m04kA/TLS-ScheduleService/pkg/ptr"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

type fakeRuleRepo struct {
	created   *domain.AvailabilityRule
	rules     []*domain.AvailabilityRule
	deleteErr error
	deletedID int64
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	rule.ID = 10
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	f.created = rule
	return rule, nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityRule, error) {
	return nil, ruleRepo.ErrRuleNotFound
}

func (f *fakeRuleRepo) GetByTutorID(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRecurring() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		TutorID:    1,
		Kind:       domain.RuleKindRecurring,
		Weekdays:   []time.Weekday{time.Monday, time.Wednesday},
		TimeFrom:   types.TimeString("10:00"),
		TimeTo:     types.TimeString("12:00"),
		LessonType: domain.LessonIndividual,
		Location:   domain.LocationOnSite,
		Modality:   domain.ModalityInPerson,
	}
}

func TestRulesCreate_Recurring(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Create(context.Background(), validRecurring())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "recurring", resp.Kind)
	assert.Equal(t, []int{1, 3}, resp.Weekdays)
	require.NotNil(t, repo.created)
}

func TestRulesCreate_Specific(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, noopLogger{})

	req := validRecurring()
	req.Kind = domain.RuleKindSpecific
	req.Weekdays = nil
	req.RuleDate = ptr.Ptr(time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC))

	resp, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, resp.RuleDate)
	assert.Equal(t, "2026-09-15", *resp.RuleDate)
}

func TestRulesCreate_Validation(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, noopLogger{})

	cases := []struct {
		name   string
		mutate func(*models.CreateRuleRequest)
	}{
		{"zero tutor", func(r *models.CreateRuleRequest) { r.TutorID = 0 }},
		{"recurring without weekdays", func(r *models.CreateRuleRequest) { r.Weekdays = nil }},
		{"recurring with date", func(r *models.CreateRuleRequest) {
			r.RuleDate = ptr.Ptr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
		}},
		{"specific without date", func(r *models.CreateRuleRequest) {
			r.Kind = domain.RuleKindSpecific
			r.Weekdays = nil
		}},
		{"unknown kind", func(r *models.CreateRuleRequest) { r.Kind = "weekly" }},
		{"bad weekday", func(r *models.CreateRuleRequest) { r.Weekdays = []time.Weekday{7} }},
		{"bad time", func(r *models.CreateRuleRequest) { r.TimeFrom = "24:99" }},
		{"bad lesson type", func(r *models.CreateRuleRequest) { r.LessonType = "pair" }},
		{"bad location", func(r *models.CreateRuleRequest) { r.Location = "moon" }},
		{"bad modality", func(r *models.CreateRuleRequest) { r.Modality = "hologram" }},
		{"inverted active bounds", func(r *models.CreateRuleRequest) {
			r.ActiveFrom = ptr.Ptr(time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC))
			r.ActiveUntil = ptr.Ptr(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRecurring()
			tc.mutate(req)
			_, err := svc.Create(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRulesListByTutor(t *testing.T) {
	repo := &fakeRuleRepo{
		rules: []*domain.AvailabilityRule{
			{
				ID:         1,
				TutorID:    1,
				Kind:       domain.RuleKindRecurring,
				Weekdays:   []time.Weekday{time.Friday},
				TimeFrom:   types.TimeString("10:00"),
				TimeTo:     types.TimeString("12:00"),
				LessonType: domain.LessonGroup,
				Location:   domain.LocationTutorHome,
				Modality:   domain.ModalityRemote,
			},
		},
	}
	svc := NewService(repo, noopLogger{})

	resp, err := svc.ListByTutor(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "group", resp[0].LessonType)

	_, err = svc.ListByTutor(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRulesDelete(t *testing.T) {
	repo := &fakeRuleRepo{}
	svc := NewService(repo, noopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, int64(5), repo.deletedID)

	repo.deleteErr = ruleRepo.ErrRuleNotFound
	require.ErrorIs(t, svc.Delete(context.Background(), 6), ErrRuleNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), 0), ErrInvalidInput)
}
