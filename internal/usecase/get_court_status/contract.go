package get_court_status

import (
	"context"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// SportRepository интерфейс репозитория видов спорта
type SportRepository interface {
	// List возвращает виды спорта, отсортированные по имени
	List(ctx context.Context) ([]*domain.Sport, error)
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	ListBySport(ctx context.Context, sportID string) ([]*domain.Court, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	// List возвращает слоты, отсортированные по часу
	List(ctx context.Context) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBySportAndDate(ctx context.Context, sportID string, date time.Time) ([]*domain.Booking, error)
}

// GridCache интерфейс кеша сетки.
// Get возвращает версию, под которой сетку можно сохранить через Set;
// после инвалидации сохранение под старой версией не видно читателям
type GridCache interface {
	Get(ctx context.Context, sportID string, date time.Time) (data []byte, version string, ok bool, err error)
	Set(ctx context.Context, version string, data []byte) error
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
