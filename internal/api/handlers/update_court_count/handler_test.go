package update_court_count

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

type fakeService struct {
	err error
	got *models.UpdateCourtCountRequest
}

func (f *fakeService) UpdateCourtCount(_ context.Context, req *models.UpdateCourtCountRequest) (*models.ResizeResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ResizeResponse{SportID: req.SportID, PreviousCount: 4, CourtCount: req.Count}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sports/{id}/courts", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/sports/tennis/courts", strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"courtCount": 6}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tennis", svc.got.SportID)
	assert.Equal(t, 6, svc.got.Count)
}

func TestHandle_Validation(t *testing.T) {
	for _, body := range []string{`{"courtCount": 0}`, `{"courtCount": 21}`, `not json`} {
		svc := &fakeService{}
		w := serve(svc, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, svc.got)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	w := serve(&fakeService{err: &domain.DependentsError{
		Resource: "2 court(s) to remove", Dependents: "booking(s)", Count: 3,
	}}, `{"courtCount": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgCourtsHaveBookings+" (3)")

	// бронирование появилось между подсчетом и удалением: количество неизвестно
	w = serve(&fakeService{err: &domain.DependentsError{
		Resource: "2 court(s) to remove", Dependents: "booking(s)",
	}}, `{"courtCount": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"`+msgCourtsHaveBookings+`"}`, w.Body.String())

	w = serve(&fakeService{err: catalog.ErrSportNotFound}, `{"courtCount": 2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(&fakeService{err: catalog.ErrInternal}, `{"courtCount": 2}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
