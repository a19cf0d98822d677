package get_sports

import (
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
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

// Handle GET /api/v1/sports
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sports, err := h.service.ListSports(r.Context())
	if err != nil {
		h.logger.Error("GET /sports - Failed to list sports: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sports)
}

// HandleWithCourts GET /api/v1/sports/with-courts
func (h *Handler) HandleWithCourts(w http.ResponseWriter, r *http.Request) {
	sports, err := h.service.ListSportsWithCourts(r.Context())
	if err != nil {
		h.logger.Error("GET /sports/with-courts - Failed to list sports: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"sports": sports,
		"total":  len(sports),
	})
}
