package timeslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/infra/storage/pgerr"
	"github.com/AryanshKukreja/court-status-service/pkg/dbmetrics"
	"github.com/AryanshKukreja/court-status-service/pkg/psqlbuilder"
)

var timeSlotColumns = []string{"id", "hour", "created_at", "updated_at"}

// Repository репозиторий для работы с временными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все слоты, отсортированные по часу
// Позиция слота в этом списке (с 1) является его внешним идентификатором
func (r *Repository) List(ctx context.Context) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		OrderBy("hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeSlotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Create создает слот
func (r *Repository) Create(ctx context.Context, hour int) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("hour").
		Values(hour).
		Suffix("RETURNING id, hour, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateHour
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Update меняет час слота
func (r *Repository) Update(ctx context.Context, id int64, hour int) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("hour", hour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, hour, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanTimeSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeSlotNotFound
	}
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateHour
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
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
		return ErrTimeSlotNotFound
	}

	return nil
}

// BulkCreate вставляет часы, пропуская уже существующие
// Возвращает только созданные слоты
func (r *Repository) BulkCreate(ctx context.Context, hours []int) ([]*domain.TimeSlot, error) {
	created := make([]*domain.TimeSlot, 0, len(hours))
	if len(hours) == 0 {
		return created, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("time_slots").Columns("hour")
	for _, h := range hours {
		builder = builder.Values(h)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (hour) DO NOTHING RETURNING id, hour, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: BulkCreate - scan row: %v", ErrScanRow, err)
		}
		created = append(created, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BulkCreate - rows error: %v", ErrScanRow, err)
	}

	return created, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		slot                 domain.TimeSlot
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(&slot.ID, &slot.Hour, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
