package approvalphotos

import (
	"context"

	"github.com/AryanshKukreja/court-status-service/internal/integrations/objectstorage"
)

// ObjectStore интерфейс хранилища фото
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	URL(key string) string
	PresignGet(ctx context.Context, key string) (string, error)
	List(ctx context.Context, prefix string, limit int) ([]objectstorage.Object, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetReferencedAttachmentKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
