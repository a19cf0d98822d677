package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/infra/storage/pgerr"
	"github.com/AryanshKukreja/court-status-service/pkg/dbmetrics"
	"github.com/AryanshKukreja/court-status-service/pkg/psqlbuilder"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

var bookingColumns = []string{
	"b.id",
	"b.court_id",
	"b.time_slot_id",
	"b.booking_date",
	"b.status",
	"b.booking_by",
	"b.attachment_key",
	"b.attachment_url",
	"b.attachment_name",
	"b.user_id",
	"b.user_name",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
// Строка в таблице bookings существует только для статусов booked и closed:
// статус available означает отсутствие строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByKey ищет бронирование по уникальной тройке (court, time_slot, date)
// Дата должна быть нормализована вызывающей стороной
func (r *Repository) FindByKey(ctx context.Context, key domain.BookingKey) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.court_id": key.CourtID}).
		Where(squirrel.Eq{"b.time_slot_id": key.TimeSlotID}).
		Where(squirrel.Eq{"b.booking_date": key.Date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByKey - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Create вставляет новое бронирование
// Конкурентная вставка той же тройки отклоняется уникальным индексом и
// возвращается как ErrDuplicateBooking - повторять её нельзя
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !booking.Status.IsPersisted() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, booking.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	key, url, name := attachmentColumns(booking.Attachment)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"court_id",
			"time_slot_id",
			"booking_date",
			"status",
			"booking_by",
			"attachment_key",
			"attachment_url",
			"attachment_name",
			"user_id",
			"user_name",
		).
		Values(
			booking.CourtID,
			booking.TimeSlotID,
			booking.Date,
			booking.Status,
			booking.BookingBy,
			key,
			url,
			name,
			booking.UserID,
			booking.UserName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Update перезаписывает статус, booking_by, фото и автора изменения
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	if !booking.Status.IsPersisted() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, booking.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	key, url, name := attachmentColumns(booking.Attachment)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("booking_by", booking.BookingBy).
		Set("attachment_key", key).
		Set("attachment_url", url).
		Set("attachment_name", name).
		Set("user_id", booking.UserID).
		Set("user_name", booking.UserName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование, возвращая ячейку в состояние available
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// GetBySportAndDate получает все бронирования на дату для площадок вида спорта
func (r *Repository) GetBySportAndDate(ctx context.Context, sportID string, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("courts c ON c.id = b.court_id").
		Where(squirrel.Eq{"c.sport_id": sportID}).
		Where(squirrel.Eq{"b.booking_date": date}).
		OrderBy("b.court_id ASC", "b.time_slot_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySportAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySportAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByCourtIDs считает бронирования, ссылающиеся на любую из площадок
func (r *Repository) CountByCourtIDs(ctx context.Context, courtIDs []int64) (int, error) {
	if len(courtIDs) == 0 {
		return 0, nil
	}

	return r.count(ctx, "CountByCourtIDs", squirrel.Eq{"court_id": courtIDs})
}

// CountByTimeSlotID считает бронирования слота
func (r *Repository) CountByTimeSlotID(ctx context.Context, timeSlotID int64) (int, error) {
	return r.count(ctx, "CountByTimeSlotID", squirrel.Eq{"time_slot_id": timeSlotID})
}

// GetReferencedAttachmentKeys возвращает подмножество ключей, на которые ссылается
// хотя бы одно бронирование. Используется для поиска осиротевших фото в хранилище
func (r *Repository) GetReferencedAttachmentKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	referenced := make(map[string]struct{})
	if len(keys) == 0 {
		return referenced, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT attachment_key").
		From("bookings").
		Where(squirrel.Eq{"attachment_key": keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReferencedAttachmentKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetReferencedAttachmentKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: GetReferencedAttachmentKeys - scan key: %v", ErrScanRow, err)
		}
		referenced[key] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetReferencedAttachmentKeys - rows error: %v", ErrScanRow, err)
	}

	return referenced, nil
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		bookingBy            sql.NullString
		attKey, attURL, attN sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CourtID,
		&booking.TimeSlotID,
		&booking.Date,
		&booking.Status,
		&bookingBy,
		&attKey,
		&attURL,
		&attN,
		&booking.UserID,
		&booking.UserName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.NormalizeDate(booking.Date)
	if bookingBy.Valid {
		booking.BookingBy = ptr.Ptr(bookingBy.String)
	}
	if attKey.Valid && attKey.String != "" {
		booking.Attachment = &domain.Attachment{
			Key:          attKey.String,
			URL:          attURL.String,
			OriginalName: attN.String,
		}
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func attachmentColumns(a *domain.Attachment) (key, url, name *string) {
	if a == nil || a.Key == "" {
		return nil, nil, nil
	}
	return &a.Key, &a.URL, &a.OriginalName
}
