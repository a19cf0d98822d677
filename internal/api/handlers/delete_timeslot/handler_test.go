package delete_timeslot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
)

type fakeService struct {
	err    error
	called bool
	id     int64
}

func (f *fakeService) Delete(_ context.Context, id int64) error {
	f.called = true
	f.id = id
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/timeslots/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/timeslots/"+id, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "3")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.id)
	assert.JSONEq(t, `{"message":"`+msgSlotDeleted+`"}`, w.Body.String())
}

func TestHandle_InvalidID(t *testing.T) {
	for _, id := range []string{"x", "-1", "0"} {
		svc := &fakeService{}
		w := serve(svc, id)

		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.False(t, svc.called, id)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "has bookings",
			err:      &domain.DependentsError{Resource: "time slot 3", Dependents: "booking(s)", Count: 2},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"нельзя удалить слот: есть бронирования (2)"}`,
		},
		{
			name:     "not found",
			err:      timeslots.ErrSlotNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"` + msgSlotNotFound + `"}`,
		},
		{
			name:     "internal",
			err:      errors.New("db down"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"внутренняя ошибка сервера"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, "3")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
