package sport

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

// Repository репозиторий для работы с видами спорта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория видов спорта
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает вид спорта
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, sport *domain.Sport) (*domain.Sport, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sports").
		Columns("id", "name").
		Values(sport.ID, sport.Name).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateSport
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sport.CreatedAt = createdAt.Time
	sport.UpdatedAt = updatedAt.Time

	return sport, nil
}

// GetByID получает вид спорта по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Sport, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at", "updated_at").
		From("sports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		sport                domain.Sport
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sport.ID, &sport.Name, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan sport: %v", ErrScanRow, err)
	}

	sport.CreatedAt = createdAt.Time
	sport.UpdatedAt = updatedAt.Time

	return &sport, nil
}

// List возвращает все виды спорта, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Sport, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at", "updated_at").
		From("sports").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sports := make([]*domain.Sport, 0)
	for rows.Next() {
		var (
			sport                domain.Sport
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&sport.ID, &sport.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		sport.CreatedAt = createdAt.Time
		sport.UpdatedAt = updatedAt.Time
		sports = append(sports, &sport)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return sports, nil
}

// ListWithCourtCount возвращает виды спорта с количеством площадок
func (r *Repository) ListWithCourtCount(ctx context.Context) ([]*domain.SportWithCourtCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id", "s.name", "s.created_at", "s.updated_at", "COUNT(c.id)").
		From("sports s").
		LeftJoin("courts c ON c.sport_id = s.id").
		GroupBy("s.id", "s.name", "s.created_at", "s.updated_at").
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithCourtCount - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithCourtCount - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SportWithCourtCount, 0)
	for rows.Next() {
		var (
			item                 domain.SportWithCourtCount
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.Name, &createdAt, &updatedAt, &item.CourtCount); err != nil {
			return nil, fmt.Errorf("%w: ListWithCourtCount - scan row: %v", ErrScanRow, err)
		}
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithCourtCount - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Delete удаляет вид спорта
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sports").
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
		return ErrSportNotFound
	}

	return nil
}
