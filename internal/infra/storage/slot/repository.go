package slot

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

const table = "time_slots"

var selectColumns = []string{
	"id",
	"tutor_id",
	"slot_date",
	"start_time",
	"duration_minutes",
	"lesson_type",
	"location",
	"modality",
	"capacity",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает слот или обновляет атрибуты существующего
// Ключ слота (tutor_id, slot_date, start_time) стабилен при перегенерации,
// поэтому запросы на бронирование продолжают ссылаться на тот же логический слот
func (r *Repository) Upsert(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"tutor_id",
			"slot_date",
			"start_time",
			"duration_minutes",
			"lesson_type",
			"location",
			"modality",
			"capacity",
		).
		Values(
			slot.TutorID,
			slot.Date,
			slot.StartTime,
			slot.DurationMinutes,
			slot.LessonType,
			slot.Location,
			slot.Modality,
			slot.Capacity,
		).
		Suffix(`ON CONFLICT (tutor_id, slot_date, start_time) DO UPDATE SET
			duration_minutes = EXCLUDED.duration_minutes,
			lesson_type = EXCLUDED.lesson_type,
			location = EXCLUDED.location,
			modality = EXCLUDED.modality,
			capacity = EXCLUDED.capacity,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByKey получает слот по логическому ключу (tutor_id, slot_date, start_time)
// Внутри транзакции блокирует строку слота (FOR UPDATE), чтобы конкурентные
// подтверждения сериализовались на одном слоте
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{
			"tutor_id":   key.TutorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.TutorID,
		&slot.Date,
		&slot.StartTime,
		&slot.DurationMinutes,
		&slot.LessonType,
		&slot.Location,
		&slot.Modality,
		&slot.Capacity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// GetWithFilter получает слоты с фильтрацией по репетитору и дате
// Фильтр AvailableOnly применяется выше (в сервисе), так как доступность
// считается по живым запросам
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(table).
		OrderBy("slot_date ASC, start_time ASC")

	if filter.TutorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"tutor_id": *filter.TutorID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// DeleteUnbookedForTutor удаляет слоты репетитора в горизонте [from, to],
// на которые нет ни одного нетерминального запроса
// Слоты с активными бронированиями сохраняются, даже если больше не
// соответствуют ни одному правилу
func (r *Repository) DeleteUnbookedForTutor(ctx context.Context, tutorID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tutor_id": tutorID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		Where(squirrel.Expr(
			`NOT EXISTS (
				SELECT 1 FROM booking_requests br
				WHERE br.tutor_id = time_slots.tutor_id
				  AND br.slot_date = time_slots.slot_date
				  AND br.start_time = time_slots.start_time
				  AND br.status = ANY(?::text[])
			)`,
			pq.Array(activeStatuses),
		)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbookedForTutor - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbookedForTutor - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbookedForTutor - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.TutorID,
			&slot.Date,
			&slot.StartTime,
			&slot.DurationMinutes,
			&slot.LessonType,
			&slot.Location,
			&slot.Modality,
			&slot.Capacity,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
