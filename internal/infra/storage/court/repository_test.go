package court

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM courts WHERE id").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(courtColumns).AddRow(int64(2), "tennis", "Tennis Court 2", now, now))

	c, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Tennis Court 2", c.Name)

	mock.ExpectQuery("SELECT (.+) FROM courts WHERE id").
		WillReturnRows(sqlmock.NewRows(courtColumns))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCourtNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListBySport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM courts WHERE sport_id = \\$1 ORDER BY id ASC").
		WithArgs("cricket").
		WillReturnRows(sqlmock.NewRows(courtColumns).
			AddRow(int64(1), "cricket", "Pitch-1", now, now).
			AddRow(int64(2), "cricket", "Pitch-2", now, now))

	courts, err := repo.ListBySport(context.Background(), "cricket")
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, "Pitch-2", courts[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockBySport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM courts WHERE sport_id = \\$1 ORDER BY id ASC FOR UPDATE").
		WithArgs("tennis").
		WillReturnRows(sqlmock.NewRows(courtColumns).AddRow(int64(1), "tennis", "Tennis Court 1", now, now))

	courts, err := repo.LockBySport(context.Background(), "tennis")
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("assigns ids in insert order", func(t *testing.T) {
		courts := []*domain.Court{
			{SportID: "padel", Name: "Padel Court 1"},
			{SportID: "padel", Name: "Padel Court 2"},
		}

		mock.ExpectQuery("INSERT INTO courts").
			WithArgs("padel", "Padel Court 1", "padel", "Padel Court 2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(11), now, now).
				AddRow(int64(12), now, now))

		require.NoError(t, repo.CreateBatch(context.Background(), courts))
		assert.Equal(t, int64(11), courts[0].ID)
		assert.Equal(t, int64(12), courts[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO courts").WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateBatch(context.Background(), []*domain.Court{{SportID: "padel", Name: "Padel Court 1"}})
		assert.ErrorIs(t, err, ErrDuplicateCourt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is noop", func(t *testing.T) {
		assert.NoError(t, repo.CreateBatch(context.Background(), nil))
	})
}

func TestRepository_DeleteByIDsAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM courts WHERE id IN").
		WithArgs(int64(3), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByIDs(context.Background(), []int64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mock.ExpectExec("DELETE FROM courts WHERE id IN").
		WithArgs(int64(5)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "bookings_court_id_fkey"})

	_, err = repo.DeleteByIDs(context.Background(), []int64{5})
	assert.ErrorIs(t, err, ErrCourtInUse)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM courts WHERE sport_id").
		WithArgs("padel").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountBySport(context.Background(), "padel")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
