package get_court_status

import (
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	getCourtStatus "github.com/AryanshKukreja/court-status-service/internal/usecase/get_court_status"
)

// SportResponse элемент списка видов спорта
type SportResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourtStatusResponse HTTP response model
type CourtStatusResponse struct {
	Date          string                    `json:"date"`
	CurrentTime   string                    `json:"currentTime"`
	Sports        []SportResponse           `json:"sports"`
	SelectedSport string                    `json:"selectedSport"`
	TimeSlots     []getCourtStatus.TimeSlot `json:"timeSlots"`
	Courts        []getCourtStatus.CourtRow `json:"courts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCourtStatus.Response) *CourtStatusResponse {
	sports := make([]SportResponse, 0, len(resp.Sports))
	for _, s := range resp.Sports {
		sports = append(sports, SportResponse{ID: s.ID, Name: s.Name})
	}

	selected := ""
	if resp.SelectedSport != nil {
		selected = resp.SelectedSport.ID
	}

	return &CourtStatusResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		CurrentTime:   resp.CurrentTime.Format(domain.ClockFormat),
		Sports:        sports,
		SelectedSport: selected,
		TimeSlots:     resp.TimeSlots,
		Courts:        resp.Courts,
	}
}
