package get_approval_photo

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos"
	"github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos/models"
)

const (
	msgInvalidFilename = "некорректное имя файла"
	msgPhotoNotFound   = "фото не найдено"
)

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

// Handle GET /api/v1/bookings/approval-photo/{filename}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.get(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, photo)
}

// HandleRedirect GET /api/v1/bookings/approval-photo-direct/{filename}
func (h *Handler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.get(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, photo.PresignedURL, http.StatusFound)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) (*models.PhotoResponse, bool) {
	filename := mux.Vars(r)["filename"]

	photo, err := h.service.Get(r.Context(), filename)
	if err != nil {
		switch {
		case errors.Is(err, approvalphotos.ErrInvalidFilename):
			h.logger.Warn("GET /bookings/approval-photo - Invalid filename: %q", filename)
			handlers.RespondBadRequest(w, msgInvalidFilename)

		case errors.Is(err, approvalphotos.ErrPhotoNotFound):
			h.logger.Warn("GET /bookings/approval-photo - Photo not found: %s", filename)
			handlers.RespondNotFound(w, msgPhotoNotFound)

		default:
			h.logger.Error("GET /bookings/approval-photo - Failed to get photo: %s, error=%v", filename, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	return photo, true
}
