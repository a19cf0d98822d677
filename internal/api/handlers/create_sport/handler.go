package create_sport

import (
	"errors"
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSportExists        = "вид спорта с таким id или названием уже существует"
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

// Handle POST /api/v1/sports/create
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sports/create - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /sports/create - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	sport, err := h.service.CreateSport(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, handlers.Detail(err, catalog.ErrInvalidInput))

		case errors.Is(err, catalog.ErrSportAlreadyExists):
			handlers.RespondBadRequest(w, msgSportExists)

		default:
			h.logger.Error("POST /sports/create - Failed to create sport: id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sports/create - Sport created: id=%s, courts=%d", sport.ID, sport.CourtCount)
	handlers.RespondJSON(w, http.StatusCreated, sport)
}
