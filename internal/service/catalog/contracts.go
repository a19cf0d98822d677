package catalog

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// SportRepository интерфейс репозитория видов спорта
type SportRepository interface {
	Create(ctx context.Context, sport *domain.Sport) (*domain.Sport, error)
	GetByID(ctx context.Context, id string) (*domain.Sport, error)
	List(ctx context.Context) ([]*domain.Sport, error)
	ListWithCourtCount(ctx context.Context) ([]*domain.SportWithCourtCount, error)
	Delete(ctx context.Context, id string) error
}

// CourtRepository интерфейс репозитория площадок
type CourtRepository interface {
	ListBySport(ctx context.Context, sportID string) ([]*domain.Court, error)
	LockBySport(ctx context.Context, sportID string) ([]*domain.Court, error)
	CreateBatch(ctx context.Context, courts []*domain.Court) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	CountBySport(ctx context.Context, sportID string) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByCourtIDs(ctx context.Context, courtIDs []int64) (int, error)
}

// StatusCache интерфейс кеша сетки статусов
type StatusCache interface {
	InvalidateSport(ctx context.Context, sportID string) error
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
