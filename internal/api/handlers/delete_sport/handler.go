package delete_sport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
)

const (
	msgSportNotFound  = "вид спорта не найден"
	msgSportHasCourts = "нельзя удалить вид спорта: есть площадки (%d)"
	msgSportDeleted   = "вид спорта удален"
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

// Handle DELETE /api/v1/sports/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sportID := mux.Vars(r)["id"]

	err := h.service.DeleteSport(r.Context(), sportID)
	if err != nil {
		var depErr *domain.DependentsError
		switch {
		case errors.As(err, &depErr):
			h.logger.Warn("DELETE /sports/{id} - Blocked: %v", depErr)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgSportHasCourts, depErr.Count))

		case errors.Is(err, catalog.ErrSportNotFound):
			handlers.RespondNotFound(w, msgSportNotFound)

		default:
			h.logger.Error("DELETE /sports/{id} - Failed to delete sport: sport=%s, error=%v", sportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sports/{id} - Sport deleted: sport=%s", sportID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgSportDeleted})
}
