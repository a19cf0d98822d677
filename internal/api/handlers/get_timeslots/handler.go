package get_timeslots

import (
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
)

type Handler struct {
	service TimeSlotService
	logger  Logger
}

func NewHandler(service TimeSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/timeslots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"timeSlots": slots,
		"total":     len(slots),
	})
}
