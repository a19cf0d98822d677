package domain

import (
	"fmt"
	"time"
)

// TimeSlot is one bookable hour [Hour, Hour+1)
type TimeSlot struct {
	ID        int64
	Hour      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label returns the slot in 12-hour clock form, e.g. "7:00 AM - 8:00 AM"
func (s *TimeSlot) Label() string {
	return fmt.Sprintf("%s - %s", formatHour(s.Hour), formatHour(s.Hour+1))
}

// IsValidSlotHour checks the configured hour bound
func IsValidSlotHour(hour int) bool {
	return hour >= MinSlotHour && hour <= MaxSlotHour
}

func formatHour(h int) string {
	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	display := h
	switch {
	case h > 12:
		display = h - 12
	case h == 0:
		display = 12
	}

	return fmt.Sprintf("%d:00 %s", display, period)
}
