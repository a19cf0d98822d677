package update_booking

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
	msgMissingFields    = "обязательные поля: courtId, timeSlotId, status"
	msgInvalidFields    = "courtId и timeSlotId должны быть числами, date в формате YYYY-MM-DD"
	msgPhotoTooLarge    = "фото превышает 5 МБ"
	msgPhotoNotImage    = "фото должно быть изображением"
	msgInvalidTimeSlot  = "некорректный ID временного слота"
	msgCourtNotFound    = "площадка не найдена"
	msgBookingConflict  = "бронирование для этой площадки, слота и даты уже изменено другим запросом"
	msgPhotoUploadError = "не удалось загрузить фото"
	msgUpdated          = "площадка %s, слот %s: статус %s (%s)"
)

type Handler struct {
	useCase  ReconcileBookingUseCase
	uploader PhotoUploader
	logger   Logger
	now      func() time.Time
}

func NewHandler(useCase ReconcileBookingUseCase, uploader PhotoUploader, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle POST /api/v1/bookings/update
// multipart/form-data: courtId, timeSlotId, status, date, booking_by, approval_photo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := handlers.ParseMultipart(w, r); err != nil {
		h.logger.Warn("POST /bookings/update - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	form := UpdateBookingForm{
		CourtID:   handlers.FormValue(r, "courtId"),
		SlotID:    handlers.FormValue(r, "timeSlotId"),
		Status:    handlers.FormValue(r, "status"),
		Date:      handlers.FormValue(r, "date"),
		BookingBy: handlers.FormValue(r, "booking_by", "bookingBy"),
	}
	if form.CourtID == "" || form.SlotID == "" || form.Status == "" {
		h.logger.Warn("POST /bookings/update - Missing required fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	useCaseReq, err := form.ToUseCaseRequest(h.now())
	if err != nil {
		h.logger.Warn("POST /bookings/update - Failed to parse form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}
	useCaseReq.Actor = actor

	photo, err := handlers.ReadPhoto(r)
	if err != nil {
		h.respondPhotoError(w, err)
		return
	}

	// Фото загружается до мутации; если оно не попадет в строку, use case его удалит
	attachment, err := handlers.UploadPhoto(r.Context(), h.uploader, photo)
	if err != nil {
		h.logger.Error("POST /bookings/update - Failed to upload photo: user=%s, error=%v", actor.Username, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgPhotoUploadError)
		return
	}
	useCaseReq.Attachment = attachment

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reconcileBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/update - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, reconcileBooking.ErrInvalidInput))

		case errors.Is(err, reconcileBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/update - Invalid time slot: slot=%s", form.SlotID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, reconcileBooking.ErrCourtNotFound):
			h.logger.Warn("POST /bookings/update - Court not found: court=%s", form.CourtID)
			handlers.RespondBadRequest(w, msgCourtNotFound)

		case errors.Is(err, reconcileBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings/update - Concurrent modification: court=%s, slot=%s", form.CourtID, form.SlotID)
			handlers.RespondBadRequest(w, msgBookingConflict)

		default:
			h.logger.Error("POST /bookings/update - Failed to update booking: court=%s, slot=%s, error=%v",
				form.CourtID, form.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/update - %s: court=%s, slot=%s, user=%s",
		response.Booking.Action, response.Booking.Court, response.Booking.TimeSlot, actor.Username)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondPhotoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, handlers.ErrPhotoTooLarge):
		h.logger.Warn("POST /bookings/update - Photo too large")
		handlers.RespondBadRequest(w, msgPhotoTooLarge)
	case errors.Is(err, handlers.ErrPhotoNotImage):
		h.logger.Warn("POST /bookings/update - Photo is not an image")
		handlers.RespondBadRequest(w, msgPhotoNotImage)
	default:
		h.logger.Warn("POST /bookings/update - Failed to read photo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
	}
}
