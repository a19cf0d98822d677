package list_approval_photos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos/models"
)

type fakeService struct {
	err    error
	called bool
	limit  int
}

func (f *fakeService) List(_ context.Context, limit int) (*models.ListResponse, error) {
	f.called = true
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return &models.ListResponse{
		Photos: []models.PhotoItem{
			{Key: "approval-photos/a.jpg", Referenced: true},
			{Key: "approval-photos/b.jpg", Referenced: false},
		},
		Total:       2,
		OrphanCount: 1,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/admin/approval-photos"+query, nil)
	NewHandler(svc, nopLogger{}).Handle(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "?limit=50")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, svc.limit)
	assert.Contains(t, w.Body.String(), `"orphanCount":1`)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestHandle_DefaultLimit(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.limit)
}

func TestHandle_InvalidLimit(t *testing.T) {
	for _, q := range []string{"?limit=abc", "?limit=0", "?limit=-5"} {
		svc := &fakeService{}
		w := serve(svc, q)

		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.JSONEq(t, `{"error":"`+msgInvalidLimit+`"}`, w.Body.String())
		assert.False(t, svc.called, q)
	}
}

func TestHandle_StoreError(t *testing.T) {
	w := serve(&fakeService{err: errors.New("s3 unavailable")}, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "s3 unavailable")
}
