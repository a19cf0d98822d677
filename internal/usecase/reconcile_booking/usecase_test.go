package reconcile_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/usecase/get_court_status"
	"github.com/AryanshKukreja/court-status-service/internal/usecase/usecasetest"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

var (
	testDate = time.Date(2025, 3, 14, 16, 45, 0, 0, time.FixedZone("IST", 5*3600+1800))
	admin    = domain.Actor{ID: "u-1", Username: "desk", IsAdmin: true}
)

type spyCache struct {
	invalidated []string
	ctxErrs     []error
}

func (c *spyCache) Invalidate(ctx context.Context, sportID string, date time.Time) error {
	c.invalidated = append(c.invalidated, sportID+"@"+date.Format(domain.DateFormat))
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	return nil
}

type fixture struct {
	db      *usecasetest.DB
	store   *usecasetest.ObjectStore
	metrics *usecasetest.Metrics
	cache   *spyCache
	courts  []*domain.Court
	uc      *UseCase
}

func newFixture(t *testing.T, requirePhoto bool) *fixture {
	t.Helper()

	f := &fixture{
		db:      usecasetest.NewDB(),
		store:   usecasetest.NewObjectStore(),
		metrics: usecasetest.NewMetrics(),
		cache:   &spyCache{},
	}
	f.db.AddSlots(domain.MinSlotHour, domain.MaxSlotHour)
	f.courts = f.db.AddSport("tennis", "Tennis", 4)

	f.uc = NewUseCase(
		f.db,
		f.db.Slots(),
		f.db.Courts(),
		f.store,
		f.cache,
		usecasetest.TxManager{},
		f.metrics,
		usecasetest.Logger{},
		Config{RequirePhoto: requirePhoto},
	)
	return f
}

func (f *fixture) request(slotID int, status string) *Request {
	return &Request{
		CourtID: f.courts[0].ID,
		SlotID:  slotID,
		Date:    testDate,
		Status:  status,
		Actor:   admin,
	}
}

func (f *fixture) booked(slotID int, name string, att *domain.Attachment) *Request {
	req := f.request(slotID, "booked")
	req.BookingBy = ptr.Ptr(name)
	req.Attachment = att
	return req
}

func TestExecute_AvailableWithoutRowIsNoop(t *testing.T) {
	f := newFixture(t, true)

	resp, err := f.uc.Execute(context.Background(), f.request(1, "available"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAlreadyAvailable, resp.Action)
	assert.Empty(t, f.db.Bookings())
}

func TestExecute_BookedCreatesRow(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	resp, err := f.uc.Execute(context.Background(), f.booked(3, "  Alice ", photo))
	require.NoError(t, err)

	assert.Equal(t, domain.ActionCreated, resp.Action)
	assert.Equal(t, "9:00 AM - 10:00 AM", resp.TimeSlot)
	assert.Equal(t, "Alice", *resp.BookingBy)
	assert.Equal(t, domain.NormalizeDate(testDate), resp.Date)

	rows := f.db.Bookings()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusBooked, rows[0].Status)
	assert.Equal(t, photo.Key, rows[0].AttachmentKey())
	assert.Equal(t, "u-1", rows[0].UserID)
	assert.True(t, f.store.Exists(photo.Key))
	assert.Equal(t, []string{"tennis@2025-03-14"}, f.cache.invalidated)
	assert.Equal(t, 1, f.metrics.Actions["created"])
}

func TestExecute_InvalidatesAfterClientGone(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	f.db.BeforeCreate = func(domain.BookingKey) { cancel() }

	resp, err := f.uc.Execute(ctx, f.request(1, "closed"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, resp.Action)

	assert.Equal(t, []string{"tennis@2025-03-14"}, f.cache.invalidated)
	assert.Equal(t, []error{nil}, f.cache.ctxErrs)
}

func TestExecute_BookedValidationHappensBeforeMutation(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	_, err := f.uc.Execute(context.Background(), f.booked(1, "   ", photo))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.db.Bookings())
	assert.False(t, f.store.Exists(photo.Key), "orphaned upload must be discarded")

	_, err = f.uc.Execute(context.Background(), f.booked(1, "Alice", nil))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.db.Bookings())
}

func TestExecute_PhotoOptional(t *testing.T) {
	f := newFixture(t, false)

	resp, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", nil))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, resp.Action)
	assert.Nil(t, resp.Attachment)
}

func TestExecute_InvalidInputs(t *testing.T) {
	f := newFixture(t, true)

	cases := map[string]*Request{
		"unknown status": f.request(1, "maintenance"),
		"zero court":     {SlotID: 1, Date: testDate, Status: "closed", Actor: admin},
		"no date":        {CourtID: f.courts[0].ID, SlotID: 1, Status: "closed", Actor: admin},
		"anonymous":      {CourtID: f.courts[0].ID, SlotID: 1, Date: testDate, Status: "closed"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := f.uc.Execute(context.Background(), f.request(17, "closed"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = f.uc.Execute(context.Background(), f.request(0, "closed"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	req := f.request(1, "closed")
	req.CourtID = 9999
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	assert.Empty(t, f.db.Bookings())
}

func TestExecute_ClosedTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t, true)

	first, err := f.uc.Execute(context.Background(), f.request(2, "closed"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, first.Action)

	second, err := f.uc.Execute(context.Background(), f.request(2, "closed"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdated, second.Action)

	assert.Len(t, f.db.Bookings(), 1)
}

func TestExecute_ReleaseDeletesRowAndPhoto(t *testing.T) {
	for _, prior := range []string{"booked", "closed"} {
		t.Run(prior, func(t *testing.T) {
			f := newFixture(t, true)
			var photo *domain.Attachment

			if prior == "booked" {
				photo = f.store.Upload("a.jpg")
				_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", photo))
				require.NoError(t, err)
			} else {
				_, err := f.uc.Execute(context.Background(), f.request(1, "closed"))
				require.NoError(t, err)
			}

			resp, err := f.uc.Execute(context.Background(), f.request(1, "available"))
			require.NoError(t, err)
			assert.Equal(t, domain.ActionDeleted, resp.Action)
			assert.Empty(t, f.db.Bookings())
			if prior == "booked" {
				assert.False(t, f.store.Exists(photo.Key))
			}
		})
	}
}

func TestExecute_ReleaseWithUploadDiscardsUpload(t *testing.T) {
	f := newFixture(t, true)
	stray := f.store.Upload("stray.jpg")

	req := f.request(1, "available")
	req.Attachment = stray

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAlreadyAvailable, resp.Action)
	assert.False(t, f.store.Exists(stray.Key))
}

func TestExecute_ReplacingPhotoDeletesOldOne(t *testing.T) {
	f := newFixture(t, true)
	oldPhoto := f.store.Upload("old.jpg")
	newPhoto := f.store.Upload("new.jpg")

	_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", oldPhoto))
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), f.booked(1, "Bob", newPhoto))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdated, resp.Action)

	rows := f.db.Bookings()
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", *rows[0].BookingBy)
	assert.Equal(t, newPhoto.Key, rows[0].AttachmentKey())
	assert.False(t, f.store.Exists(oldPhoto.Key))
	assert.True(t, f.store.Exists(newPhoto.Key))
}

func TestExecute_ClosingClearsEvidence(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")
	stray := f.store.Upload("stray.jpg")

	_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", photo))
	require.NoError(t, err)

	req := f.request(1, "closed")
	req.BookingBy = ptr.Ptr("ignored")
	req.Attachment = stray

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUpdated, resp.Action)

	rows := f.db.Bookings()
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusClosed, rows[0].Status)
	assert.Nil(t, rows[0].BookingBy)
	assert.False(t, rows[0].HasAttachment())
	assert.False(t, f.store.Exists(photo.Key))
	assert.False(t, f.store.Exists(stray.Key))
}

func TestExecute_InsertRaceIsConflict(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	// параллельный запрос успевает вставить строку между чтением и вставкой
	f.db.BeforeCreate = func(key domain.BookingKey) {
		f.db.BeforeCreate = nil
		f.db.InsertBooking(domain.Booking{
			CourtID: key.CourtID, TimeSlotID: key.TimeSlotID, Date: key.Date,
			Status: domain.StatusClosed, UserID: "other",
		})
	}

	_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", photo))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.Len(t, f.db.Bookings(), 1)
	assert.False(t, f.store.Exists(photo.Key))
}

func TestExecute_DeleteRaceReportsDeleteFailed(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", photo))
	require.NoError(t, err)

	f.db.BeforeDelete = func(id int64) { f.db.RemoveBooking(id) }

	resp, err := f.uc.Execute(context.Background(), f.request(1, "available"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDeleteFailed, resp.Action)
	assert.Equal(t, 0, f.store.DeleteCount(photo.Key))
}

func TestExecute_CleanupFailureDoesNotBlockRelease(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	_, err := f.uc.Execute(context.Background(), f.booked(1, "Alice", photo))
	require.NoError(t, err)

	f.store.FailDelete = true

	resp, err := f.uc.Execute(context.Background(), f.request(1, "available"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDeleted, resp.Action)
	assert.Empty(t, f.db.Bookings())
	assert.Equal(t, 1, f.metrics.CleanupFailures)
}

func TestExecute_SharedPhotoIsKeptWhileReferenced(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("shared.jpg")

	bulk, err := f.uc.ExecuteBulk(context.Background(), &BulkRequest{
		CourtID: f.courts[0].ID, SlotIDs: []int{1, 2}, Date: testDate,
		Status: "booked", BookingBy: ptr.Ptr("Team"), Attachment: photo, Actor: admin,
	})
	require.NoError(t, err)
	require.Equal(t, 2, bulk.Succeeded)

	_, err = f.uc.Execute(context.Background(), f.request(1, "available"))
	require.NoError(t, err)
	assert.True(t, f.store.Exists(photo.Key), "slot 2 still references the photo")

	_, err = f.uc.Execute(context.Background(), f.request(2, "available"))
	require.NoError(t, err)
	assert.False(t, f.store.Exists(photo.Key))
}

func TestExecute_RoundTripWithProjection(t *testing.T) {
	f := newFixture(t, true)
	photo := f.store.Upload("a.jpg")

	projection := get_court_status.NewUseCase(
		f.db.Sports(), f.db.Courts(), f.db.Slots(), f.db, nil, f.metrics, usecasetest.Logger{},
	)
	cellOf := func() get_court_status.Cell {
		resp, err := projection.Execute(context.Background(), &get_court_status.Request{SportID: "tennis", Date: testDate})
		require.NoError(t, err)
		return resp.Courts[0].Cells[4]
	}

	_, err := f.uc.Execute(context.Background(), f.booked(5, "Alice", photo))
	require.NoError(t, err)

	cell := cellOf()
	assert.Equal(t, domain.StatusBooked, cell.Status)
	assert.Equal(t, "Alice", *cell.BookingBy)
	require.NotNil(t, cell.Attachment)
	assert.Equal(t, photo.URL, cell.Attachment.URL)

	_, err = f.uc.Execute(context.Background(), f.request(5, "available"))
	require.NoError(t, err)

	cell = cellOf()
	assert.Equal(t, domain.StatusAvailable, cell.Status)
	assert.Nil(t, cell.BookingBy)
	assert.Nil(t, cell.Attachment)
	assert.False(t, f.store.Exists(photo.Key))
}
