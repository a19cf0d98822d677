package update_booking

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	reconcileBooking "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

// UpdateBookingForm поля формы запроса
type UpdateBookingForm struct {
	CourtID   string
	SlotID    string
	Status    string
	Date      string
	BookingBy string
}

// AttachmentResponse фото в ответе
type AttachmentResponse struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
}

// BookingResponse изменение одной ячейки
type BookingResponse struct {
	CourtID    int64               `json:"courtId"`
	Court      string              `json:"court"`
	SlotID     int                 `json:"slotId"`
	TimeSlot   string              `json:"timeSlot"`
	Date       string              `json:"date"`
	Status     string              `json:"status"`
	User       string              `json:"user"`
	BookingBy  *string             `json:"bookingBy"`
	Attachment *AttachmentResponse `json:"attachment"`
	Action     string              `json:"action"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует форму в модель use case; пустая дата означает сегодня
func (f *UpdateBookingForm) ToUseCaseRequest(now time.Time) (*reconcileBooking.Request, error) {
	courtID, err := strconv.ParseInt(f.CourtID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("courtId: %w", err)
	}

	slotID, err := strconv.Atoi(f.SlotID)
	if err != nil {
		return nil, fmt.Errorf("timeSlotId: %w", err)
	}

	date, err := handlers.ParseDate(f.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if date.IsZero() {
		date = now
	}

	req := &reconcileBooking.Request{
		CourtID: courtID,
		SlotID:  slotID,
		Date:    date,
		Status:  f.Status,
	}
	if f.BookingBy != "" {
		req.BookingBy = ptr.Ptr(f.BookingBy)
	}
	return req, nil
}

// FromAttachment конвертирует фото в ответ
func FromAttachment(a *domain.Attachment) *AttachmentResponse {
	if a == nil {
		return nil
	}
	return &AttachmentResponse{Key: a.Key, URL: a.URL, OriginalName: a.OriginalName}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileBooking.Response) *UpdateBookingResponse {
	return &UpdateBookingResponse{
		Success: true,
		Message: fmt.Sprintf(msgUpdated, resp.CourtName, resp.TimeSlot, resp.Status, resp.Action),
		Booking: BookingResponse{
			CourtID:    resp.CourtID,
			Court:      resp.CourtName,
			SlotID:     resp.SlotID,
			TimeSlot:   resp.TimeSlot,
			Date:       resp.Date.Format(domain.DateFormat),
			Status:     string(resp.Status),
			User:       resp.UpdatedBy,
			BookingBy:  resp.BookingBy,
			Attachment: FromAttachment(resp.Attachment),
			Action:     string(resp.Action),
		},
	}
}
