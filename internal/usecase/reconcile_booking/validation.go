package reconcile_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

// target общие для одиночного и пакетного запроса поля после валидации
type target struct {
	courtID    int64
	date       time.Time
	status     domain.BookingStatus
	bookingBy  *string
	attachment *domain.Attachment
	actor      domain.Actor
}

// validateTarget проверяет общие поля запроса. Ошибка означает, что мутаций не будет
func validateTarget(
	courtID int64,
	date time.Time,
	rawStatus string,
	bookingBy *string,
	attachment *domain.Attachment,
	actor domain.Actor,
	requirePhoto bool,
) (*target, error) {
	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	status, ok := domain.ParseBookingStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: status must be one of available, booked, closed", ErrInvalidInput)
	}

	if !actor.IsAuthenticated() {
		return nil, fmt.Errorf("%w: authenticated user is required", ErrInvalidInput)
	}

	t := &target{
		courtID: courtID,
		date:    domain.NormalizeDate(date),
		status:  status,
		actor:   actor,
	}

	if attachment != nil && attachment.Key != "" {
		t.attachment = attachment
	}

	if status == domain.StatusBooked {
		name := strings.TrimSpace(ptr.Value(bookingBy))
		if name == "" {
			return nil, fmt.Errorf("%w: bookingBy is required for booked status", ErrInvalidInput)
		}
		if requirePhoto && t.attachment == nil {
			return nil, fmt.Errorf("%w: approval photo is required for booked status", ErrInvalidInput)
		}
		t.bookingBy = ptr.Ptr(name)
	}

	return t, nil
}

// resolveSlot переводит позицию (с 1) в запись слота
func resolveSlot(slots []*domain.TimeSlot, position int) (*domain.TimeSlot, error) {
	if position < 1 || position > len(slots) {
		return nil, fmt.Errorf("%w: slot %d is out of range 1..%d", ErrInvalidTimeSlot, position, len(slots))
	}
	return slots[position-1], nil
}
