package rule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/TLS-ScheduleService/pkg/psqlbuilder"
)

const table = "availability_rules"

var selectColumns = []string{
	"id",
	"tutor_id",
	"kind",
	"weekdays",
	"rule_date",
	"time_from",
	"time_to",
	"active_from",
	"active_until",
	"lesson_type",
	"location",
	"modality",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"tutor_id",
			"kind",
			"weekdays",
			"rule_date",
			"time_from",
			"time_to",
			"active_from",
			"active_until",
			"lesson_type",
			"location",
			"modality",
		).
		Values(
			rule.TutorID,
			rule.Kind,
			pq.Array(weekdaysToInts(rule.Weekdays)),
			rule.RuleDate,
			rule.TimeFrom,
			rule.TimeTo,
			rule.ActiveFrom,
			rule.ActiveUntil,
			rule.LessonType,
			rule.Location,
			rule.Modality,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило доступности по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rules, err := r.queryRules(ctx, executor, query, args)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrExecQuery, err)
	}
	if len(rules) == 0 {
		return nil, ErrRuleNotFound
	}

	return rules[0], nil
}

// GetByTutorID получает все правила доступности репетитора
// Порядок стабильный (по id), чтобы генерация слотов была детерминированной
func (r *Repository) GetByTutorID(ctx context.Context, tutorID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"tutor_id": tutorID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTutorID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRules(ctx, executor, query, args)
}

// ListTutorIDs возвращает всех репетиторов, у которых есть правила доступности
// Используется при массовой перегенерации слотов
func (r *Repository) ListTutorIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT tutor_id").
		From(table).
		OrderBy("tutor_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTutorIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTutorIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tutorIDs := make([]int64, 0)
	for rows.Next() {
		var tutorID int64
		if err := rows.Scan(&tutorID); err != nil {
			return nil, fmt.Errorf("%w: ListTutorIDs - scan tutor_id: %v", ErrScanRow, err)
		}
		tutorIDs = append(tutorIDs, tutorID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTutorIDs - rows error: %v", ErrScanRow, err)
	}

	return tutorIDs, nil
}

// Delete удаляет правило доступности
// Уже сгенерированные слоты при этом не трогаются - удаление правила
// не действует задним числом
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// queryRules выполняет запрос и сканирует результат в слайс правил
func (r *Repository) queryRules(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.AvailabilityRule, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekdays pq.Int64Array
		var ruleDate, activeFrom, activeUntil sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.TutorID,
			&rule.Kind,
			&weekdays,
			&ruleDate,
			&rule.TimeFrom,
			&rule.TimeTo,
			&activeFrom,
			&activeUntil,
			&rule.LessonType,
			&rule.Location,
			&rule.Modality,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: queryRules - scan row: %v", ErrScanRow, err)
		}

		rule.Weekdays = intsToWeekdays(weekdays)
		if ruleDate.Valid {
			d := ruleDate.Time
			rule.RuleDate = &d
		}
		if activeFrom.Valid {
			d := activeFrom.Time
			rule.ActiveFrom = &d
		}
		if activeUntil.Valid {
			d := activeUntil.Time
			rule.ActiveUntil = &d
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// weekdaysToInts конвертирует дни недели в целые для хранения в INT[]
func weekdaysToInts(weekdays []time.Weekday) []int64 {
	ints := make([]int64, len(weekdays))
	for i, wd := range weekdays {
		ints[i] = int64(wd)
	}
	return ints
}

// intsToWeekdays конвертирует значения из INT[] в дни недели
func intsToWeekdays(ints pq.Int64Array) []time.Weekday {
	weekdays := make([]time.Weekday, 0, len(ints))
	for _, v := range ints {
		if v >= 0 && v <= 6 {
			weekdays = append(weekdays, time.Weekday(v))
		}
	}
	return weekdays
}
