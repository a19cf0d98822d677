package create_timeslot

import (
	"errors"
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/admin/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	slot, err := h.service.Create(r.Context(), *req.Hour)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidHour):
			handlers.RespondBadRequest(w, handlers.Detail(err, timeslots.ErrInvalidHour))

		case errors.Is(err, timeslots.ErrSlotAlreadyExists):
			handlers.RespondBadRequest(w, msgSlotExists)

		default:
			h.logger.Error("POST /admin/timeslots - Failed to create slot: hour=%d, error=%v", *req.Hour, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/timeslots - Slot created: id=%d, hour=%d", slot.ID, slot.Hour)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
