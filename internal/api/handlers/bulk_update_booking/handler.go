package bulk_update_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/api/middleware"
	reconcileBooking "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
)

const (
	msgUnauthorized     = "пользователь не аутентифицирован"
	msgInvalidForm      = "некорректная форма запроса"
	msgMissingFields    = "обязательные поля: courtId, slotIds, status"
	msgInvalidFields    = "courtId должен быть числом, slotIds списком чисел, date в формате YYYY-MM-DD"
	msgPhotoTooLarge    = "фото превышает 5 МБ"
	msgPhotoNotImage    = "фото должно быть изображением"
	msgCourtNotFound    = "площадка не найдена"
	msgPhotoUploadError = "не удалось загрузить фото"
	msgBulkSummary      = "обновлено слотов: %d из %d, площадка %s"
	msgSlotInvalid      = "некорректный временной слот"
	msgSlotConflict     = "бронирование изменено параллельно, повторите запрос"
	msgSlotInternal     = "внутренняя ошибка"
)

type Handler struct {
	useCase  BulkReconcileUseCase
	uploader PhotoUploader
	logger   Logger
	now      func() time.Time
}

func NewHandler(useCase BulkReconcileUseCase, uploader PhotoUploader, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle POST /api/v1/bookings/bulk-update
// multipart/form-data: courtId, slotIds, status, date, booking_by, approval_photo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := handlers.ParseMultipart(w, r); err != nil {
		h.logger.Warn("POST /bookings/bulk-update - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	form := BulkUpdateForm{
		CourtID:   handlers.FormValue(r, "courtId"),
		SlotIDs:   handlers.FormValue(r, "slotIds"),
		Status:    handlers.FormValue(r, "status"),
		Date:      handlers.FormValue(r, "date"),
		BookingBy: handlers.FormValue(r, "booking_by", "bookingBy"),
	}
	if form.CourtID == "" || form.SlotIDs == "" || form.Status == "" {
		h.logger.Warn("POST /bookings/bulk-update - Missing required fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	useCaseReq, err := form.ToUseCaseRequest(h.now())
	if err != nil {
		h.logger.Warn("POST /bookings/bulk-update - Failed to parse form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}
	useCaseReq.Actor = actor

	photo, err := handlers.ReadPhoto(r)
	if err != nil {
		switch {
		case errors.Is(err, handlers.ErrPhotoTooLarge):
			handlers.RespondBadRequest(w, msgPhotoTooLarge)
		case errors.Is(err, handlers.ErrPhotoNotImage):
			handlers.RespondBadRequest(w, msgPhotoNotImage)
		default:
			handlers.RespondBadRequest(w, msgInvalidForm)
		}
		h.logger.Warn("POST /bookings/bulk-update - Rejected photo: %v", err)
		return
	}

	// Одно фото на все слоты пакета
	attachment, err := handlers.UploadPhoto(r.Context(), h.uploader, photo)
	if err != nil {
		h.logger.Error("POST /bookings/bulk-update - Failed to upload photo: user=%s, error=%v", actor.Username, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgPhotoUploadError)
		return
	}
	useCaseReq.Attachment = attachment

	result, err := h.useCase.ExecuteBulk(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reconcileBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/bulk-update - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, reconcileBooking.ErrInvalidInput))

		case errors.Is(err, reconcileBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings/bulk-update - Court not found: court=%s", form.CourtID)
			handlers.RespondBadRequest(w, msgCourtNotFound)

		default:
			h.logger.Error("POST /bookings/bulk-update - Failed to update bookings: court=%s, error=%v", form.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/bulk-update - court=%s: succeeded=%d, failed=%d, user=%s",
		response.Court, result.Succeeded, result.Failed, actor.Username)
	handlers.RespondJSON(w, StatusCode(result), response)
}
