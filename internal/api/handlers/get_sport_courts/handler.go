package get_sport_courts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
)

const msgSportNotFound = "вид спорта не найден"

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

// Handle GET /api/v1/sports/{id}/courts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sportID := mux.Vars(r)["id"]

	sport, err := h.service.GetSportWithCourts(r.Context(), sportID)
	if err != nil {
		if errors.Is(err, catalog.ErrSportNotFound) {
			h.logger.Warn("GET /sports/{id}/courts - Sport not found: sport=%s", sportID)
			handlers.RespondNotFound(w, msgSportNotFound)
			return
		}
		h.logger.Error("GET /sports/{id}/courts - Failed to get sport: sport=%s, error=%v", sportID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sport)
}
