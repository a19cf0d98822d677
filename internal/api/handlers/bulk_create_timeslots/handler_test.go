package bulk_create_timeslots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

type fakeService struct {
	resp *models.BulkCreateResponse
	err  error
}

func (f *fakeService) BulkCreate(context.Context, int, int) (*models.BulkCreateResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/timeslots/bulk", strings.NewReader(body))
	NewHandler(svc, nopLogger{}).Handle(w, req)
	return w
}

func TestHandle_StatusCodes(t *testing.T) {
	all := &fakeService{resp: &models.BulkCreateResponse{
		Created:      []models.SlotResponse{{ID: 1, Hour: 8}, {ID: 2, Hour: 9}},
		SkippedHours: []int{},
	}}
	assert.Equal(t, http.StatusCreated, serve(all, `{"startHour": 8, "endHour": 9}`).Code)

	partial := &fakeService{resp: &models.BulkCreateResponse{
		Created:      []models.SlotResponse{{ID: 1, Hour: 8}},
		SkippedHours: []int{9},
	}}
	w := serve(partial, `{"startHour": 8, "endHour": 9}`)
	assert.Equal(t, http.StatusMultiStatus, w.Code)
	assert.Contains(t, w.Body.String(), `"skippedHours":[9]`)
}

func TestHandle_Validation(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"startHour": 8}`).Code)

	invalid := &fakeService{err: fmt.Errorf("%w: start hour must be before end hour", timeslots.ErrInvalidInput)}
	w := serve(invalid, `{"startHour": 9, "endHour": 8}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"start hour must be before end hour"}`, w.Body.String())
}
