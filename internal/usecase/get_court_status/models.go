package get_court_status

import (
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// Request модель запроса сетки статусов
type Request struct {
	SportID string    // пусто - первый вид спорта по имени
	Date    time.Time // нулевая дата - сегодня
}

// Response сетка статусов площадок вида спорта на дату
type Response struct {
	Date          time.Time
	CurrentTime   time.Time
	Sports        []*domain.Sport
	SelectedSport *domain.Sport
	Grid
}

// Grid часть ответа, которая кешируется
type Grid struct {
	TimeSlots []TimeSlot `json:"timeSlots"`
	Courts    []CourtRow `json:"courts"`
}

// TimeSlot слот с позиционным ID (с 1)
type TimeSlot struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// CourtRow строка сетки: площадка и ячейки по всем слотам
type CourtRow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// Cell ячейка (court, slot)
type Cell struct {
	SlotID     int                  `json:"slotId"`
	Status     domain.BookingStatus `json:"status"`
	BookingBy  *string              `json:"bookingBy"`
	Attachment *CellAttachment      `json:"attachment"`
}

// CellAttachment фото в ячейке
type CellAttachment struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
}
