package domain

import (
	"errors"
	"fmt"
)

// ErrHasDependents удаление или уменьшение невозможно, пока есть зависимые записи
var ErrHasDependents = errors.New("resource has dependent records")

// DependentsError несет количество блокирующих записей
type DependentsError struct {
	Resource   string // что пытались удалить
	Dependents string // что мешает
	Count      int
}

// Count 0 означает, что количество неизвестно (ошибка пришла от внешнего ключа)
func (e *DependentsError) Error() string {
	if e.Count <= 0 {
		return fmt.Sprintf("%s has %s", e.Resource, e.Dependents)
	}
	return fmt.Sprintf("%s has %d %s", e.Resource, e.Count, e.Dependents)
}

func (e *DependentsError) Unwrap() error {
	return ErrHasDependents
}
