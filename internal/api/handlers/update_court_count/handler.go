package update_court_count

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSportNotFound      = "вид спорта не найден"
	msgCourtsHaveBookings = "нельзя уменьшить количество площадок: на удаляемых площадках есть бронирования"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sports/{id}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sportID := mux.Vars(r)["id"]

	var req models.UpdateCourtCountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sports/{id}/courts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /sports/{id}/courts - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	req.SportID = sportID

	result, err := h.service.UpdateCourtCount(r.Context(), &req)
	if err != nil {
		var depErr *domain.DependentsError
		switch {
		case errors.As(err, &depErr):
			h.logger.Warn("PUT /sports/{id}/courts - Blocked: sport=%s, %v", sportID, depErr)
			handlers.RespondBadRequest(w, courtsHaveBookings(depErr))

		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Detail(err, catalog.ErrInvalidInput))

		case errors.Is(err, catalog.ErrSportNotFound):
			handlers.RespondNotFound(w, msgSportNotFound)

		default:
			h.logger.Error("PUT /sports/{id}/courts - Failed to resize: sport=%s, error=%v", sportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sports/{id}/courts - sport=%s: %d -> %d", sportID, result.PreviousCount, result.CourtCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// courtsHaveBookings количество известно, если его посчитали до удаления
func courtsHaveBookings(err *domain.DependentsError) string {
	if err.Count > 0 {
		return fmt.Sprintf("%s (%d)", msgCourtsHaveBookings, err.Count)
	}
	return msgCourtsHaveBookings
}
