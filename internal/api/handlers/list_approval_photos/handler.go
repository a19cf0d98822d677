package list_approval_photos

import (
	"net/http"
	"strconv"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
)

const msgInvalidLimit = "limit должен быть положительным числом"

type Handler struct {
	service ApprovalPhotoService
	logger  Logger
}

func NewHandler(service ApprovalPhotoService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/admin/approval-photos?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /bookings/admin/approval-photos - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /bookings/admin/approval-photos - Failed to list photos: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/admin/approval-photos - total=%d, orphans=%d", result.Total, result.OrphanCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
