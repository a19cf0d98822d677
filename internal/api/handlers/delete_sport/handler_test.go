package delete_sport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
)

type fakeService struct {
	err error
	got string
}

func (f *fakeService) DeleteSport(_ context.Context, sportID string) error {
	f.got = sportID
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, sportID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/sports/{id}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sports/"+sportID, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "squash")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "squash", svc.got)
	assert.JSONEq(t, `{"message":"`+msgSportDeleted+`"}`, w.Body.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "has courts",
			err:      &domain.DependentsError{Resource: "sport tennis", Dependents: "court(s)", Count: 4},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"нельзя удалить вид спорта: есть площадки (4)"}`,
		},
		{
			name:     "not found",
			err:      catalog.ErrSportNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"` + msgSportNotFound + `"}`,
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
			w := serve(&fakeService{err: tt.err}, "tennis")

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
