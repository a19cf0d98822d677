package timeslots

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	List(ctx context.Context) ([]*domain.TimeSlot, error)
	Create(ctx context.Context, hour int) (*domain.TimeSlot, error)
	Update(ctx context.Context, id int64, hour int) (*domain.TimeSlot, error)
	Delete(ctx context.Context, id int64) error
	BulkCreate(ctx context.Context, hours []int) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByTimeSlotID(ctx context.Context, timeSlotID int64) (int, error)
}

// StatusCache интерфейс кеша сетки статусов
type StatusCache interface {
	InvalidateAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
