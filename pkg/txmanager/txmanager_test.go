package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/pkg/dbmetrics"
)

func TestTransactionManager_Do(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tm := NewTransactionManager(dbmetrics.Wrap(db, nil))

	t.Run("commit on success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.Do(context.Background(), func(ctx context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(ctx))
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := tm.Do(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.Do(context.Background(), func(ctx context.Context) error {
			return tm.Do(ctx, func(ctx context.Context) error { return nil })
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

		err := tm.Do(context.Background(), func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, ErrBeginTx)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
