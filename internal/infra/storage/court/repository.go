package court

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

var courtColumns = []string{"id", "sport_id", "name", "created_at", "updated_at"}

// Repository репозиторий для работы с площадками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	court, err := scanCourt(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %v", ErrScanRow, err)
	}

	return court, nil
}

// ListBySport возвращает площадки вида спорта в порядке создания
func (r *Repository) ListBySport(ctx context.Context, sportID string) ([]*domain.Court, error) {
	return r.listBySport(ctx, "ListBySport", sportID, "")
}

// LockBySport как ListBySport, но блокирует строки до конца транзакции.
// Вставка бронирования ссылается на площадку (FOR KEY SHARE) и ждет снятия блокировки
func (r *Repository) LockBySport(ctx context.Context, sportID string) ([]*domain.Court, error) {
	return r.listBySport(ctx, "LockBySport", sportID, "FOR UPDATE")
}

func (r *Repository) listBySport(ctx context.Context, op, sportID, lock string) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"sport_id": sportID}).
		OrderBy("id ASC")
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return courts, nil
}

// CreateBatch вставляет площадки одним запросом и проставляет им ID
func (r *Repository) CreateBatch(ctx context.Context, courts []*domain.Court) error {
	if len(courts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("courts").Columns("sport_id", "name")
	for _, c := range courts {
		builder = builder.Values(c.SportID, c.Name)
	}

	query, args, err := builder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateCourt
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает строки RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(courts) {
			break
		}
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&courts[i].ID, &createdAt, &updatedAt); err != nil {
			return fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}
		courts[i].CreatedAt = createdAt.Time
		courts[i].UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return ErrDuplicateCourt
		}
		return fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// DeleteByIDs удаляет площадки и возвращает количество удаленных строк
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("courts").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: DeleteByIDs - %s", ErrCourtInUse, pgerr.Constraint(err))
		}
		return 0, fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByIDs - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CountBySport считает площадки вида спорта
func (r *Repository) CountBySport(ctx context.Context, sportID string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("courts").
		Where(squirrel.Eq{"sport_id": sportID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySport - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySport - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCourt(row rowScanner) (*domain.Court, error) {
	var (
		court                domain.Court
		createdAt, updatedAt sql.NullTime
	)

	if err := row.Scan(&court.ID, &court.SportID, &court.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	court.CreatedAt = createdAt.Time
	court.UpdatedAt = updatedAt.Time

	return &court, nil
}
