package delete_sport

import "context"

type CatalogService interface {
	DeleteSport(ctx context.Context, sportID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
