package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	courtRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/court"
	sportRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/sport"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type mockSportRepo struct{ mock.Mock }

func (m *mockSportRepo) Create(ctx context.Context, s *domain.Sport) (*domain.Sport, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sport), args.Error(1)
}

func (m *mockSportRepo) GetByID(ctx context.Context, id string) (*domain.Sport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sport), args.Error(1)
}

func (m *mockSportRepo) List(ctx context.Context) ([]*domain.Sport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Sport), args.Error(1)
}

func (m *mockSportRepo) ListWithCourtCount(ctx context.Context) ([]*domain.SportWithCourtCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.SportWithCourtCount), args.Error(1)
}

func (m *mockSportRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCourtRepo struct{ mock.Mock }

func (m *mockCourtRepo) ListBySport(ctx context.Context, sportID string) ([]*domain.Court, error) {
	args := m.Called(ctx, sportID)
	return args.Get(0).([]*domain.Court), args.Error(1)
}

func (m *mockCourtRepo) LockBySport(ctx context.Context, sportID string) ([]*domain.Court, error) {
	args := m.Called(ctx, sportID)
	return args.Get(0).([]*domain.Court), args.Error(1)
}

func (m *mockCourtRepo) CreateBatch(ctx context.Context, courts []*domain.Court) error {
	return m.Called(ctx, courts).Error(0)
}

func (m *mockCourtRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCourtRepo) CountBySport(ctx context.Context, sportID string) (int, error) {
	args := m.Called(ctx, sportID)
	return args.Int(0), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) CountByCourtIDs(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

// liveCtx совпадает с контекстом, который не отменен
var liveCtx = mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })

type mockCache struct{ mock.Mock }

func (m *mockCache) InvalidateSport(ctx context.Context, sportID string) error {
	return m.Called(ctx, sportID).Error(0)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mocks struct {
	sports   *mockSportRepo
	courts   *mockCourtRepo
	bookings *mockBookingRepo
	cache    *mockCache
}

func newService() (*Service, *mocks) {
	m := &mocks{
		sports:   &mockSportRepo{},
		courts:   &mockCourtRepo{},
		bookings: &mockBookingRepo{},
		cache:    &mockCache{},
	}
	return NewService(m.sports, m.courts, m.bookings, m.cache, passTx{}, nopLogger{}), m
}

func courtsOf(sportID, name string, n int) []*domain.Court {
	courts := make([]*domain.Court, 0, n)
	for i := 1; i <= n; i++ {
		courts = append(courts, &domain.Court{ID: int64(i), SportID: sportID, Name: domain.CourtName(name, i)})
	}
	return courts
}

func TestService_CreateSport(t *testing.T) {
	ctx := context.Background()

	t.Run("padel gets four courts", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("Create", ctx, &domain.Sport{ID: "padel", Name: "Padel"}).
			Return(&domain.Sport{ID: "padel", Name: "Padel"}, nil)
		m.courts.On("CreateBatch", ctx, mock.MatchedBy(func(courts []*domain.Court) bool {
			return len(courts) == 4
		})).Return(nil)

		resp, err := svc.CreateSport(ctx, &models.CreateSportRequest{ID: "padel", Name: "Padel"})
		require.NoError(t, err)

		require.Len(t, resp.Courts, 4)
		for i, c := range resp.Courts {
			assert.Equal(t, domain.CourtName("Padel", i+1), c.Name)
		}
		assert.Equal(t, "Padel Court 1", resp.Courts[0].Name)
		assert.Equal(t, "Padel Court 4", resp.Courts[3].Name)
		m.sports.AssertExpectations(t)
		m.courts.AssertExpectations(t)
	})

	t.Run("cricket gets pitches", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("Create", ctx, mock.Anything).Return(&domain.Sport{ID: "cricket", Name: "Cricket"}, nil)
		m.courts.On("CreateBatch", ctx, mock.Anything).Return(nil)

		resp, err := svc.CreateSport(ctx, &models.CreateSportRequest{ID: "cricket", Name: "Cricket"})
		require.NoError(t, err)
		assert.Equal(t, "Pitch-1", resp.Courts[0].Name)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.CreateSport(ctx, &models.CreateSportRequest{ID: "Table Tennis", Name: "Table Tennis"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.CreateSport(ctx, &models.CreateSportRequest{ID: "golf"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("Create", ctx, mock.Anything).Return(nil, sportRepo.ErrDuplicateSport)

		_, err := svc.CreateSport(ctx, &models.CreateSportRequest{ID: "padel", Name: "Padel"})
		assert.ErrorIs(t, err, ErrSportAlreadyExists)
		m.courts.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateCourtCount(t *testing.T) {
	ctx := context.Background()
	tennis := &domain.Sport{ID: "tennis", Name: "Tennis"}

	t.Run("grow appends next names", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(tennis, nil)
		m.courts.On("LockBySport", ctx, "tennis").Return(courtsOf("tennis", "Tennis", 4), nil)
		m.courts.On("CreateBatch", ctx, mock.Anything).Return(nil)
		m.cache.On("InvalidateSport", liveCtx, "tennis").Return(nil)

		resp, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 6})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.PreviousCount)
		require.Len(t, resp.Added, 2)
		assert.Equal(t, "Tennis Court 5", resp.Added[0].Name)
		assert.Equal(t, "Tennis Court 6", resp.Added[1].Name)
		m.cache.AssertExpectations(t)
	})

	t.Run("shrink removes highest numbered courts", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(tennis, nil)
		m.courts.On("LockBySport", ctx, "tennis").Return(courtsOf("tennis", "Tennis", 4), nil)
		m.bookings.On("CountByCourtIDs", ctx, []int64{3, 4}).Return(0, nil)
		m.courts.On("DeleteByIDs", ctx, []int64{3, 4}).Return(int64(2), nil)
		m.cache.On("InvalidateSport", liveCtx, "tennis").Return(errors.New("redis down"))

		resp, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 2})
		require.NoError(t, err)
		require.Len(t, resp.Removed, 2)
		assert.Equal(t, "Tennis Court 3", resp.Removed[0].Name)
		m.courts.AssertExpectations(t)
	})

	t.Run("shrink blocked by bookings", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(tennis, nil)
		m.courts.On("LockBySport", ctx, "tennis").Return(courtsOf("tennis", "Tennis", 4), nil)
		m.bookings.On("CountByCourtIDs", ctx, []int64{2, 3, 4}).Return(5, nil)

		_, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 1})
		require.ErrorIs(t, err, domain.ErrHasDependents)

		var depErr *domain.DependentsError
		require.True(t, errors.As(err, &depErr))
		assert.Equal(t, 5, depErr.Count)
		m.courts.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
	})

	t.Run("booking inserted before delete is still a guard error", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(tennis, nil)
		m.courts.On("LockBySport", ctx, "tennis").Return(courtsOf("tennis", "Tennis", 4), nil)
		m.bookings.On("CountByCourtIDs", ctx, []int64{4}).Return(0, nil)
		m.courts.On("DeleteByIDs", ctx, []int64{4}).
			Return(int64(0), fmt.Errorf("%w: DeleteByIDs - bookings_court_id_fkey", courtRepo.ErrCourtInUse))

		_, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 3})
		require.ErrorIs(t, err, domain.ErrHasDependents)
		assert.NotErrorIs(t, err, ErrInternal)
		m.cache.AssertNotCalled(t, "InvalidateSport", mock.Anything, mock.Anything)
	})

	t.Run("unchanged count is noop", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(tennis, nil)
		m.courts.On("LockBySport", ctx, "tennis").Return(courtsOf("tennis", "Tennis", 4), nil)

		resp, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 4})
		require.NoError(t, err)
		assert.Empty(t, resp.Added)
		assert.Empty(t, resp.Removed)
		m.cache.AssertNotCalled(t, "InvalidateSport", mock.Anything, mock.Anything)
	})

	t.Run("out of range", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 21})
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "tennis", Count: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown sport", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "golf").Return(nil, sportRepo.ErrSportNotFound)

		_, err := svc.UpdateCourtCount(ctx, &models.UpdateCourtCountRequest{SportID: "golf", Count: 2})
		assert.ErrorIs(t, err, ErrSportNotFound)
	})
}

func TestService_DeleteSport(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked by courts", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(&domain.Sport{ID: "tennis"}, nil)
		m.courts.On("CountBySport", ctx, "tennis").Return(4, nil)

		err := svc.DeleteSport(ctx, "tennis")
		assert.ErrorIs(t, err, domain.ErrHasDependents)
		m.sports.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleted", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "tennis").Return(&domain.Sport{ID: "tennis"}, nil)
		m.courts.On("CountBySport", ctx, "tennis").Return(0, nil)
		m.sports.On("Delete", ctx, "tennis").Return(nil)
		m.cache.On("InvalidateSport", liveCtx, "tennis").Return(nil)

		require.NoError(t, svc.DeleteSport(ctx, "tennis"))
		m.sports.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService()

		m.sports.On("GetByID", ctx, "golf").Return(nil, sportRepo.ErrSportNotFound)

		assert.ErrorIs(t, svc.DeleteSport(ctx, "golf"), ErrSportNotFound)
	})
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, m := newService()

	m.sports.On("List", ctx).Return([]*domain.Sport{{ID: "badminton", Name: "Badminton"}}, nil)
	m.sports.On("ListWithCourtCount", ctx).Return([]*domain.SportWithCourtCount{
		{Sport: domain.Sport{ID: "badminton", Name: "Badminton"}, CourtCount: 4},
	}, nil)
	m.sports.On("GetByID", ctx, "badminton").Return(&domain.Sport{ID: "badminton", Name: "Badminton"}, nil)
	m.courts.On("ListBySport", ctx, "badminton").Return(courtsOf("badminton", "Badminton", 2), nil)

	sports, err := svc.ListSports(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Badminton", sports[0].Name)

	withCourts, err := svc.ListSportsWithCourts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, withCourts[0].CourtCount)

	detail, err := svc.GetSportWithCourts(ctx, "badminton")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.CourtCount)
	assert.Equal(t, "Badminton Court 2", detail.Courts[1].Name)
}
