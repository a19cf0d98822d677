package get_timeslots

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

type TimeSlotService interface {
	List(ctx context.Context) ([]models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
