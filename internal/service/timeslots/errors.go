package timeslots

import "errors"

var (
	// ErrInvalidHour возвращается, когда час вне допустимого диапазона
	ErrInvalidHour = errors.New("hour is out of the allowed range")

	// ErrSlotAlreadyExists возвращается при повторном часе
	ErrSlotAlreadyExists = errors.New("time slot for this hour already exists")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots service: internal error")
)
