package delete_timeslot

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
)

const (
	msgInvalidSlotID   = "некорректный ID слота"
	msgSlotNotFound    = "слот не найден"
	msgSlotHasBookings = "нельзя удалить слот: есть бронирования (%d)"
	msgSlotDeleted     = "слот удален"
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

// Handle DELETE /api/v1/admin/timeslots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/timeslots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.Delete(r.Context(), id)
	if err != nil {
		var depErr *domain.DependentsError
		switch {
		case errors.As(err, &depErr):
			h.logger.Warn("DELETE /admin/timeslots/{id} - Blocked: %v", depErr)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgSlotHasBookings, depErr.Count))

		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /admin/timeslots/{id} - Failed to delete slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/timeslots/{id} - Slot deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"message": msgSlotDeleted})
}
