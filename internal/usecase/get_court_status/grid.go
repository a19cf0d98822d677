package get_court_status

import (
	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// buildGrid строит полную сетку courts x slots: каждая ячейка по умолчанию
// available, затем поверх накладываются сохраненные бронирования
func buildGrid(courts []*domain.Court, slots []*domain.TimeSlot, bookings []*domain.Booking) Grid {
	// ID слота -> позиция (с 1)
	positions := make(map[int64]int, len(slots))
	timeSlots := make([]TimeSlot, 0, len(slots))
	for i, slot := range slots {
		positions[slot.ID] = i + 1
		timeSlots = append(timeSlots, TimeSlot{ID: i + 1, Label: slot.Label()})
	}

	rowIndex := make(map[int64]int, len(courts))
	rows := make([]CourtRow, 0, len(courts))
	for i, court := range courts {
		cells := make([]Cell, 0, len(slots))
		for pos := 1; pos <= len(slots); pos++ {
			cells = append(cells, Cell{SlotID: pos, Status: domain.StatusAvailable})
		}
		rowIndex[court.ID] = i
		rows = append(rows, CourtRow{ID: court.ID, Name: court.Name, Cells: cells})
	}

	for _, b := range bookings {
		ri, ok := rowIndex[b.CourtID]
		if !ok {
			continue
		}
		pos, ok := positions[b.TimeSlotID]
		if !ok {
			continue
		}

		cell := &rows[ri].Cells[pos-1]
		cell.Status = b.Status
		cell.BookingBy = b.BookingBy
		if b.HasAttachment() {
			cell.Attachment = &CellAttachment{
				Key:          b.Attachment.Key,
				URL:          b.Attachment.URL,
				OriginalName: b.Attachment.OriginalName,
			}
		}
	}

	return Grid{TimeSlots: timeSlots, Courts: rows}
}
