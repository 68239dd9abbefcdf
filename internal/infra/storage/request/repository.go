package request

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TLS-ScheduleService/internal/domain"
	"github.com/m04kA/TLS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/TLS-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/TLS-ScheduleService/pkg/types"
)

const table = "booking_requests"

var selectColumns = []string{
	"id",
	"tutor_id",
	"client_id",
	"dependent_id",
	"slot_date",
	"start_time",
	"status",
	"decline_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запросами на бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый запрос на бронирование
// ID (UUID) генерируется вызывающим usecase до вставки
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"tutor_id",
			"client_id",
			"dependent_id",
			"slot_date",
			"start_time",
			"status",
		).
		Values(
			req.ID,
			req.TutorID,
			req.ClientID,
			req.DependentID,
			req.SlotDate,
			req.StartTime,
			req.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает запрос на бронирование по ID
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы конкурентные
// переходы статуса одного запроса сериализовались
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetWithFilter получает запросы с гибкой фильтрацией
// Поддерживает фильтрацию по репетитору, клиенту, статусу, дате и времени слота,
// а также выборку только нетерминальных запросов (ActiveOnly)
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.RequestsFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(table).
		OrderBy("slot_date DESC, start_time DESC, created_at DESC")

	if filter.TutorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"tutor_id": *filter.TutorID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.SlotDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.SlotDate})
	}
	if filter.StartTime != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
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

	return r.scanRequests(rows)
}

// GetActiveBySlot получает все нетерминальные запросы на указанный слот
// Внутри транзакции блокирует строки (FOR UPDATE) - единственный разделяемый
// мутабельный ресурс, требующий координации, это именно набор запросов слота
func (r *Repository) GetActiveBySlot(ctx context.Context, key domain.SlotKey) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{
			"tutor_id":   key.TutorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"status":     activeStatusStrings(),
		}).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// CountActiveBySlot считает нетерминальные запросы на слот
// Занятость слота всегда вычисляется этим запросом, а не хранится отдельным
// счётчиком - счётчик со временем разъезжается с реальностью
func (r *Repository) CountActiveBySlot(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"tutor_id":   key.TutorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"status":     activeStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountBySlotAndStatus считает запросы на слот в указанном статусе
// Используется на пути подтверждения: ёмкость слота расходуют только
// принятые запросы
func (r *Repository) CountBySlotAndStatus(ctx context.Context, key domain.SlotKey, status domain.RequestStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"tutor_id":   key.TutorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"status":     status,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlotAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySlotAndStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveBySlots считает нетерминальные запросы сразу для набора слотов одной выборкой
// Ключ результата - (slot_date в формате YYYY-MM-DD, start_time)
func (r *Repository) CountActiveBySlots(ctx context.Context, tutorID int64, date *time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("slot_date", "start_time", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"tutor_id": tutorID,
			"status":   activeStatusStrings(),
		}).
		GroupBy("slot_date", "start_time")

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slotDate time.Time
		var startTime types.TimeString
		var count int
		if err := rows.Scan(&slotDate, &startTime, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveBySlots - scan row: %v", ErrScanRow, err)
		}
		counts[domain.OccupancyKey(domain.SlotKey{TutorID: tutorID, Date: slotDate, StartTime: startTime})] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlots - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// HasActiveDuplicate проверяет, есть ли у клиента нетерминальный запрос
// на тот же слот от имени того же ученика
func (r *Repository) HasActiveDuplicate(ctx context.Context, key domain.SlotKey, clientID int64, dependentID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"tutor_id":     key.TutorID,
			"slot_date":    key.Date,
			"start_time":   key.StartTime,
			"client_id":    clientID,
			"dependent_id": dependentID, // nil превращается в IS NULL
			"status":       activeStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveDuplicate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasActiveDuplicate - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// UpdateStatus обновляет статус запроса
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// Cancel переводит запрос в cancelled с фиксацией времени отмены
func (r *Repository) Cancel(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// DeclineConflicts переводит в declined_conflict все pending-запросы на слот,
// кроме запроса-победителя, одним UPDATE
// Выполняется в той же транзакции, что и подтверждение победителя, поэтому
// читатель никогда не увидит принятый запрос рядом с ещё pending конкурентами
func (r *Repository) DeclineConflicts(ctx context.Context, key domain.SlotKey, winnerID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusDeclinedConflict).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"tutor_id":   key.TutorID,
			"slot_date":  key.Date,
			"start_time": key.StartTime,
			"status":     domain.StatusPending,
		}).
		Where(squirrel.NotEq{"id": winnerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeclineConflicts - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeclineConflicts - execute update: %v", ErrExecQuery, err)
	}

	declined, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeclineConflicts - get rows affected: %v", ErrExecQuery, err)
	}

	return declined, nil
}

// GetExpirable получает запросы в статусах pending/pending_unavailable,
// чей слот начинается ровно на указанной часовой границе
// Уже истёкшие запросы сюда не попадают, поэтому повторный sweep за тот же
// час ничего не находит
func (r *Repository) GetExpirable(ctx context.Context, date time.Time, startTime types.TimeString) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	expirable := make([]string, len(domain.ExpirableStatuses))
	for i, s := range domain.ExpirableStatuses {
		expirable[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(table).
		Where(squirrel.Eq{
			"slot_date":  date,
			"start_time": startTime,
			"status":     expirable,
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExpirable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpirable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует одну строку в запрос на бронирование
func (r *Repository) scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var dependentID sql.NullInt64
	var declineReason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.TutorID,
		&req.ClientID,
		&dependentID,
		&req.SlotDate,
		&req.StartTime,
		&req.Status,
		&declineReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if dependentID.Valid {
		v := dependentID.Int64
		req.DependentID = &v
	}
	if declineReason.Valid {
		v := declineReason.String
		req.DeclineReason = &v
	}
	if cancelledAt.Valid {
		v := cancelledAt.Time
		req.CancelledAt = &v
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanRequests сканирует результаты запроса в слайс запросов на бронирование
func (r *Repository) scanRequests(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	requests := make([]*domain.BookingRequest, 0)

	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// activeStatusStrings возвращает нетерминальные статусы строками для squirrel.Eq
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
