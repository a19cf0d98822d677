package get_court_status

import "errors"

var (
	// ErrNoSports возвращается, когда не настроено ни одного вида спорта
	ErrNoSports = errors.New("get_court_status: no sports configured")

	// ErrSportNotFound возвращается, когда вид спорта не найден
	ErrSportNotFound = errors.New("get_court_status: sport not found")

	// ErrNoTimeSlots возвращается, когда не настроено ни одного слота
	ErrNoTimeSlots = errors.New("get_court_status: no time slots configured")

	// ErrNoCourts возвращается, когда у вида спорта нет площадок
	ErrNoCourts = errors.New("get_court_status: no courts configured for sport")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_court_status: internal error")
)
