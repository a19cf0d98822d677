package bulk_create_timeslots

import (
	"errors"
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/admin/timeslots/bulk
// 201 если созданы все часы, 207 если часть уже существовала
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/timeslots/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.BulkCreate(r.Context(), *req.StartHour, *req.EndHour)
	if err != nil {
		switch {
		case errors.Is(err, timeslots.ErrInvalidHour):
			handlers.RespondBadRequest(w, handlers.Detail(err, timeslots.ErrInvalidHour))

		case errors.Is(err, timeslots.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Detail(err, timeslots.ErrInvalidInput))

		default:
			h.logger.Error("POST /admin/timeslots/bulk - Failed to create slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.HasSkipped() {
		status = http.StatusMultiStatus
	}

	h.logger.Info("POST /admin/timeslots/bulk - created=%d, skipped=%d", len(result.Created), len(result.SkippedHours))
	handlers.RespondJSON(w, status, result)
}
