package models

import "time"

// PhotoResponse адреса одного фото
type PhotoResponse struct {
	Filename     string `json:"filename"`
	Key          string `json:"key"`
	URL          string `json:"url"`
	PresignedURL string `json:"presignedUrl"`
}

// PhotoItem элемент листинга
type PhotoItem struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	Referenced   bool      `json:"referenced"`
}

// ListResponse листинг фото с числом осиротевших объектов
type ListResponse struct {
	Photos      []PhotoItem `json:"photos"`
	Total       int         `json:"total"`
	OrphanCount int         `json:"orphanCount"`
}
