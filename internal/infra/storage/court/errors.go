package court

import "errors"

var (
	// ErrCourtNotFound возвращается, когда площадка не найдена
	ErrCourtNotFound = errors.New("court.repository: court not found")

	// ErrDuplicateCourt возвращается при повторном имени площадки внутри вида спорта
	ErrDuplicateCourt = errors.New("court.repository: court name already exists for sport")

	// ErrCourtInUse возвращается при удалении площадки, на которую ссылаются бронирования
	ErrCourtInUse = errors.New("court.repository: court is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("court.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("court.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("court.repository: failed to scan row")
)
