package reconcile_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reconcile_booking: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда позиция слота вне списка слотов
	ErrInvalidTimeSlot = errors.New("reconcile_booking: invalid time slot")

	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("reconcile_booking: court not found")

	// ErrBookingConflict возвращается, когда строка для (court, slot, date) была
	// создана или удалена параллельным запросом. Повторять запрос автоматически нельзя
	ErrBookingConflict = errors.New("reconcile_booking: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile_booking: internal error")
)
