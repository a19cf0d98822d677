package objectstorage

import "errors"

var (
	// ErrObjectNotFound возвращается, когда объекта с таким ключом нет в хранилище
	ErrObjectNotFound = errors.New("objectstorage client: object not found")

	// ErrInvalidInput возвращается при пустом теле или ключе
	ErrInvalidInput = errors.New("objectstorage client: invalid input")

	// ErrInternal возвращается при ошибках обращения к хранилищу
	ErrInternal = errors.New("objectstorage client: internal error")
)
