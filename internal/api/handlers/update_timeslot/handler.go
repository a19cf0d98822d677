package update_timeslot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotExists         = "слот на этот час уже существует"
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

// Handle PUT /api/v1/admin/timeslots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("PUT /admin/timeslots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/timeslots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	slot, err := h.service.Update(r.Context(), id, *req.Hour)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidHour):
			handlers.RespondBadRequest(w, handlers.Detail(err, timeslots.ErrInvalidHour))

		case errors.Is(err, timeslots.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, timeslots.ErrSlotAlreadyExists):
			handlers.RespondBadRequest(w, msgSlotExists)

		default:
			h.logger.Error("PUT /admin/timeslots/{id} - Failed to update slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/timeslots/{id} - Slot updated: id=%d, hour=%d", slot.ID, slot.Hour)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
