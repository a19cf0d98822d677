package objectstorage

import "time"

// Config параметры подключения к S3-совместимому хранилищу
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string // пусто для AWS, адрес MinIO/LocalStack иначе
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	PublicBaseURL   string // шаблон публичного адреса: <PublicBaseURL>/<key>
	PresignTTL      time.Duration
}

// Object элемент листинга
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// StoredObject результат загрузки
type StoredObject struct {
	Key string
	URL string
}
