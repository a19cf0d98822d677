package reconcile_booking

import (
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// Config настройки движка
type Config struct {
	// RequirePhoto требует фото при статусе booked
	RequirePhoto bool
}

// Request модель запроса на изменение статуса ячейки
type Request struct {
	CourtID    int64              // ID площадки
	SlotID     int                // позиция слота (с 1) в списке, отсортированном по часу
	Date       time.Time          // дата, нормализуется до полуночи UTC
	Status     string             // available | booked | closed
	BookingBy  *string            // обязательно для booked
	Attachment *domain.Attachment // уже загруженное фото (опционально)
	Actor      domain.Actor       // кто выполняет изменение
}

// Response результат изменения одной ячейки
type Response struct {
	CourtID    int64
	CourtName  string
	SlotID     int
	TimeSlot   string
	Date       time.Time
	Status     domain.BookingStatus
	BookingBy  *string
	Attachment *domain.Attachment
	Action     domain.ReconcileAction
	UpdatedBy  string
}

// BulkRequest изменение статуса нескольких слотов одной площадки на одну дату
// Attachment общий для всех слотов
type BulkRequest struct {
	CourtID    int64
	SlotIDs    []int
	Date       time.Time
	Status     string
	BookingBy  *string
	Attachment *domain.Attachment
	Actor      domain.Actor
}

// SlotResult результат по одному слоту
type SlotResult struct {
	SlotID   int
	TimeSlot string
	Success  bool
	Action   domain.ReconcileAction
	Err      error // причина отказа, текст для клиента выбирает обработчик
}

// BulkResponse результат пакетного изменения
type BulkResponse struct {
	CourtID    int64
	CourtName  string
	Date       time.Time
	Status     domain.BookingStatus
	BookingBy  *string
	Attachment *domain.Attachment
	Results    []SlotResult
	Succeeded  int
	Failed     int
	Total      int
	Partial    bool
}
