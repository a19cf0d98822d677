package bulk_update_booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/api/handlers"
	"github.com/AryanshKukreja/court-status-service/internal/domain"
	reconcileBooking "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
	"github.com/AryanshKukreja/court-status-service/pkg/ptr"
)

// BulkUpdateForm поля формы запроса
type BulkUpdateForm struct {
	CourtID   string
	SlotIDs   string // "1,2,3" или "[1,2,3]"
	Status    string
	Date      string
	BookingBy string
}

// AttachmentResponse фото в ответе
type AttachmentResponse struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
}

// SlotResultResponse результат по слоту
type SlotResultResponse struct {
	SlotID   int    `json:"slotId"`
	TimeSlot string `json:"timeSlot,omitempty"`
	Success  bool   `json:"success"`
	Action   string `json:"action,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SummaryResponse счетчики
type SummaryResponse struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BulkUpdateResponse HTTP response model
type BulkUpdateResponse struct {
	Success    bool                 `json:"success"`
	Partial    bool                 `json:"partial"`
	Message    string               `json:"message"`
	CourtID    int64                `json:"courtId"`
	Court      string               `json:"court"`
	Date       string               `json:"date"`
	Status     string               `json:"status"`
	BookingBy  *string              `json:"bookingBy"`
	Attachment *AttachmentResponse  `json:"attachment"`
	Results    []SlotResultResponse `json:"results"`
	Summary    SummaryResponse      `json:"summary"`
}

// ParseSlotIDs принимает список через запятую или JSON массив
func ParseSlotIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("slotIds is empty")
	}

	if strings.HasPrefix(raw, "[") {
		var ids []int
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("slotIds: %w", err)
		}
		if len(ids) == 0 {
			return nil, errors.New("slotIds is empty")
		}
		return ids, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("slotIds: %w", err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("slotIds is empty")
	}
	return ids, nil
}

// ToUseCaseRequest конвертирует форму в модель use case; пустая дата означает сегодня
func (f *BulkUpdateForm) ToUseCaseRequest(now time.Time) (*reconcileBooking.BulkRequest, error) {
	courtID, err := strconv.ParseInt(f.CourtID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("courtId: %w", err)
	}

	slotIDs, err := ParseSlotIDs(f.SlotIDs)
	if err != nil {
		return nil, err
	}

	date, err := handlers.ParseDate(f.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if date.IsZero() {
		date = now
	}

	req := &reconcileBooking.BulkRequest{
		CourtID: courtID,
		SlotIDs: slotIDs,
		Date:    date,
		Status:  f.Status,
	}
	if f.BookingBy != "" {
		req.BookingBy = ptr.Ptr(f.BookingBy)
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileBooking.BulkResponse) *BulkUpdateResponse {
	results := make([]SlotResultResponse, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, SlotResultResponse{
			SlotID:   r.SlotID,
			TimeSlot: r.TimeSlot,
			Success:  r.Success,
			Action:   string(r.Action),
			Error:    slotErrorMessage(r.Err),
		})
	}

	var attachment *AttachmentResponse
	if resp.Attachment != nil {
		attachment = &AttachmentResponse{
			Key:          resp.Attachment.Key,
			URL:          resp.Attachment.URL,
			OriginalName: resp.Attachment.OriginalName,
		}
	}

	return &BulkUpdateResponse{
		Success:    resp.Failed == 0,
		Partial:    resp.Partial,
		Message:    fmt.Sprintf(msgBulkSummary, resp.Succeeded, resp.Total, resp.CourtName),
		CourtID:    resp.CourtID,
		Court:      resp.CourtName,
		Date:       resp.Date.Format(domain.DateFormat),
		Status:     string(resp.Status),
		BookingBy:  resp.BookingBy,
		Attachment: attachment,
		Results:    results,
		Summary: SummaryResponse{
			Total:     resp.Total,
			Succeeded: resp.Succeeded,
			Failed:    resp.Failed,
		},
	}
}

// slotErrorMessage текст ошибки слота без внутренних деталей
func slotErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, reconcileBooking.ErrInvalidTimeSlot):
		return msgSlotInvalid
	case errors.Is(err, reconcileBooking.ErrBookingConflict):
		return msgSlotConflict
	case errors.Is(err, reconcileBooking.ErrInvalidInput):
		return handlers.Detail(err, reconcileBooking.ErrInvalidInput)
	default:
		return msgSlotInternal
	}
}

// StatusCode 200 все слоты успешны, 207 частичный успех, 400 все слоты с ошибкой
func StatusCode(resp *reconcileBooking.BulkResponse) int {
	switch {
	case resp.Failed == 0:
		return http.StatusOK
	case resp.Succeeded > 0:
		return http.StatusMultiStatus
	default:
		return http.StatusBadRequest
	}
}
