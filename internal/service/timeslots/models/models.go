package models

import (
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// SlotRequest запрос на создание или изменение слота
type SlotRequest struct {
	Hour *int `json:"hour" validate:"required"`
}

// BulkCreateRequest запрос на создание диапазона слотов, границы включительно
type BulkCreateRequest struct {
	StartHour *int `json:"startHour" validate:"required"`
	EndHour   *int `json:"endHour" validate:"required"`
}

// SlotResponse слот с подписью
type SlotResponse struct {
	ID        int64     `json:"id"`
	Hour      int       `json:"hour"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BulkCreateResponse результат массового создания
type BulkCreateResponse struct {
	Created      []SlotResponse `json:"created"`
	SkippedHours []int          `json:"skippedHours"`
}

// HasSkipped true, если часть часов уже существовала
func (r *BulkCreateResponse) HasSkipped() bool {
	return len(r.SkippedHours) > 0
}

// FromDomain конвертирует доменную модель в ответ
func FromDomain(s *domain.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		Hour:      s.Hour,
		Label:     s.Label(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
