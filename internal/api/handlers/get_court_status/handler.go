package get_court_status

import (
	"errors"
	"net/http"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	getCourtStatus "github.com/AryanshKukreja/court-status-service/internal/usecase/get_court_status"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNoSports      = "виды спорта не настроены"
	msgSportNotFound = "вид спорта не найден"
	msgNoTimeSlots   = "временные слоты не настроены"
	msgNoCourts      = "для вида спорта не настроены площадки"
)

type Handler struct {
	useCase GetCourtStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetCourtStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/court-status
// Query params: sport (optional), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sportID := r.URL.Query().Get("sport")

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /bookings/court-status - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCourtStatus.Request{
		SportID: sportID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCourtStatus.ErrNoSports):
			h.logger.Warn("GET /bookings/court-status - No sports configured")
			handlers.RespondNotFound(w, msgNoSports)

		case errors.Is(err, getCourtStatus.ErrSportNotFound):
			h.logger.Warn("GET /bookings/court-status - Sport not found: sport=%s", sportID)
			handlers.RespondNotFound(w, msgSportNotFound)

		case errors.Is(err, getCourtStatus.ErrNoTimeSlots):
			h.logger.Warn("GET /bookings/court-status - No time slots configured")
			handlers.RespondBadRequest(w, msgNoTimeSlots)

		case errors.Is(err, getCourtStatus.ErrNoCourts):
			h.logger.Warn("GET /bookings/court-status - No courts: sport=%s", sportID)
			handlers.RespondBadRequest(w, msgNoCourts)

		default:
			h.logger.Error("GET /bookings/court-status - Failed to build grid: sport=%s, error=%v", sportID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /bookings/court-status - Grid returned: sport=%s, date=%s, courts=%d, slots=%d",
		response.SelectedSport, response.Date, len(response.Courts), len(response.TimeSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
