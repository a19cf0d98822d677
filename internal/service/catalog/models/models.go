package models

import (
	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// Request модели

// CreateSportRequest запрос на создание вида спорта
type CreateSportRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateCourtCountRequest запрос на изменение количества площадок
type UpdateCourtCountRequest struct {
	SportID string `json:"-"`
	Count   int    `json:"courtCount" validate:"min=1,max=20"`
}

// Response модели

// SportResponse вид спорта
type SportResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourtResponse площадка
type CourtResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SportWithCourtsResponse вид спорта с площадками
type SportWithCourtsResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CourtCount int             `json:"courtCount"`
	Courts     []CourtResponse `json:"courts,omitempty"`
}

// ResizeResponse результат изменения количества площадок
type ResizeResponse struct {
	SportID       string          `json:"sportId"`
	PreviousCount int             `json:"previousCount"`
	CourtCount    int             `json:"courtCount"`
	Added         []CourtResponse `json:"added"`
	Removed       []CourtResponse `json:"removed"`
}

// FromDomainSport конвертирует доменную модель в ответ
func FromDomainSport(s *domain.Sport) SportResponse {
	return SportResponse{ID: s.ID, Name: s.Name}
}

// FromDomainCourts конвертирует площадки в ответ
func FromDomainCourts(courts []*domain.Court) []CourtResponse {
	result := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		result = append(result, CourtResponse{ID: c.ID, Name: c.Name})
	}
	return result
}
