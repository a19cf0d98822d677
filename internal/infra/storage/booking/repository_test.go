package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func bookingRowColumns() []string {
	return []string{
		"id", "court_id", "time_slot_id", "booking_date", "status", "booking_by",
		"attachment_key", "attachment_url", "attachment_name",
		"user_id", "user_name", "created_at", "updated_at",
	}
}

func TestRepository_FindByKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	key := domain.BookingKey{CourtID: 3, TimeSlotID: 5, Date: testDate}

	t.Run("found with attachment", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(bookingRowColumns()).
			AddRow(int64(10), int64(3), int64(5), testDate, "booked", "Alice",
				"approval-photos/1-a.jpg", "https://cdn/approval-photos/1-a.jpg", "a.jpg",
				"u-1", "admin", now, now)

		mock.ExpectQuery("SELECT (.+) FROM bookings b WHERE").
			WithArgs(int64(3), int64(5), testDate).
			WillReturnRows(rows)

		b, err := repo.FindByKey(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, int64(10), b.ID)
		assert.Equal(t, domain.StatusBooked, b.Status)
		require.NotNil(t, b.BookingBy)
		assert.Equal(t, "Alice", *b.BookingBy)
		require.True(t, b.HasAttachment())
		assert.Equal(t, "approval-photos/1-a.jpg", b.AttachmentKey())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found without attachment", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(bookingRowColumns()).
			AddRow(int64(11), int64(3), int64(5), testDate, "closed", nil,
				nil, nil, nil, "u-1", "admin", now, now)

		mock.ExpectQuery("SELECT (.+) FROM bookings b WHERE").WillReturnRows(rows)

		b, err := repo.FindByKey(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, b.BookingBy)
		assert.False(t, b.HasAttachment())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings b WHERE").
			WillReturnRows(sqlmock.NewRows(bookingRowColumns()))

		_, err := repo.FindByKey(context.Background(), key)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			CourtID:    3,
			TimeSlotID: 5,
			Date:       testDate,
			Status:     domain.StatusBooked,
			BookingBy:  ptr.Ptr("Alice"),
			UserID:     "u-1",
			UserName:   "admin",
		}
	}

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

		b, err := repo.Create(context.Background(), newBooking())
		require.NoError(t, err)
		assert.Equal(t, int64(42), b.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrDuplicateBooking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("available is never persisted", func(t *testing.T) {
		b := newBooking()
		b.Status = domain.StatusAvailable

		_, err := repo.Create(context.Background(), b)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	b := &domain.Booking{ID: 7, Status: domain.StatusClosed, UserID: "u-1", UserName: "admin"}

	t.Run("update success", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), b))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update vanished row", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), b), ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM bookings WHERE").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 7))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete zero rows", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM bookings WHERE").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 7), ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetBySportAndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(bookingRowColumns()).
		AddRow(int64(1), int64(1), int64(1), testDate, "booked", "A", nil, nil, nil, "u", "n", now, now).
		AddRow(int64(2), int64(2), int64(3), testDate, "closed", nil, nil, nil, nil, "u", "n", now, now)

	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN courts c").
		WithArgs("tennis", testDate).
		WillReturnRows(rows)

	bookings, err := repo.GetBySportAndDate(context.Background(), "tennis", testDate)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, domain.StatusClosed, bookings[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE court_id IN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByCourtIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.CountByCourtIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings WHERE time_slot_id").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	n, err = repo.CountByTimeSlotID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetReferencedAttachmentKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT DISTINCT attachment_key FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"attachment_key"}).AddRow("approval-photos/a.jpg"))

	refs, err := repo.GetReferencedAttachmentKeys(context.Background(), []string{"approval-photos/a.jpg", "approval-photos/b.jpg"})
	require.NoError(t, err)
	assert.Len(t, refs, 1)
	assert.Contains(t, refs, "approval-photos/a.jpg")
	assert.NoError(t, mock.ExpectationsWereMet())
}
