package approvalphotos

import "errors"

var (
	// ErrInvalidFilename возвращается при пустом имени или попытке выйти за префикс
	ErrInvalidFilename = errors.New("invalid photo filename")

	// ErrPhotoNotFound возвращается, когда фото нет в хранилище
	ErrPhotoNotFound = errors.New("approval photo not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("approval photos service: internal error")
)
