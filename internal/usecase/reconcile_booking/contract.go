package reconcile_booking

import (
	"context"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindByKey(ctx context.Context, key domain.BookingKey) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	GetReferencedAttachmentKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	List(ctx context.Context) ([]*domain.TimeSlot, error)
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// AttachmentStore интерфейс хранилища фото
type AttachmentStore interface {
	Delete(ctx context.Context, key string) error
}

// StatusCache интерфейс кеша сетки статусов
type StatusCache interface {
	Invalidate(ctx context.Context, sportID string, date time.Time) error
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordBookingAction(action string)
	RecordAttachmentCleanupFailure()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
