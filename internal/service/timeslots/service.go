package timeslots

import (
	"context"
	"errors"
	"fmt"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	slotRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/timeslot"
	"github.com/AryanshKukreja/court-status-service/internal/service/timeslots/models"
)

// Service сервис справочника временных слотов
type Service struct {
	slotRepo    TimeSlotRepository
	bookingRepo BookingRepository
	cache       StatusCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса
// cache может быть nil, если кеш выключен
func NewService(slotRepo TimeSlotRepository, bookingRepo BookingRepository, cache StatusCache, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		logger:      logger,
	}
}

// List возвращает слоты по возрастанию часа
func (s *Service) List(ctx context.Context) ([]models.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]models.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, models.FromDomain(slot))
	}
	return result, nil
}

// Create создает слот на указанный час
func (s *Service) Create(ctx context.Context, hour int) (*models.SlotResponse, error) {
	s.logger.Info("Create: hour=%d", hour)

	if err := validateHour(hour); err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.Create(ctx, hour)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateHour) {
			s.logger.Warn("Create: slot for hour=%d already exists", hour)
			return nil, ErrSlotAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	resp := models.FromDomain(slot)
	return &resp, nil
}

// Update меняет час слота
func (s *Service) Update(ctx context.Context, id int64, hour int) (*models.SlotResponse, error) {
	s.logger.Info("Update: id=%d, hour=%d", id, hour)

	if id <= 0 {
		return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}
	if err := validateHour(hour); err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.Update(ctx, id, hour)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrTimeSlotNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrDuplicateHour):
			s.logger.Warn("Update: slot for hour=%d already exists", hour)
			return nil, ErrSlotAlreadyExists
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	resp := models.FromDomain(slot)
	return &resp, nil
}

// Delete удаляет слот без бронирований
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.CountByTimeSlotID(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings: %v", err)
		return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
	}
	if bookings > 0 {
		s.logger.Warn("Delete: slot id=%d still has %d bookings", id, bookings)
		return &domain.DependentsError{
			Resource:   "time slot",
			Dependents: "booking(s)",
			Count:      bookings,
		}
	}

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotRepo.ErrTimeSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	return nil
}

// BulkCreate создает слоты на часы [start, end], уже существующие пропускаются
func (s *Service) BulkCreate(ctx context.Context, start, end int) (*models.BulkCreateResponse, error) {
	s.logger.Info("BulkCreate: start=%d, end=%d", start, end)

	// 1. Валидация диапазона
	if err := validateHour(start); err != nil {
		return nil, err
	}
	if err := validateHour(end); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start hour must be before end hour", ErrInvalidInput)
	}

	// 2. Вставка
	hours := make([]int, 0, end-start+1)
	for h := start; h <= end; h++ {
		hours = append(hours, h)
	}

	created, err := s.slotRepo.BulkCreate(ctx, hours)
	if err != nil {
		s.logger.Error("BulkCreate: repository error: %v", err)
		return nil, fmt.Errorf("%w: BulkCreate - repository error: %v", ErrInternal, err)
	}

	// 3. Разделение на созданные и пропущенные
	resp := &models.BulkCreateResponse{
		Created:      make([]models.SlotResponse, 0, len(created)),
		SkippedHours: []int{},
	}
	createdHours := make(map[int]struct{}, len(created))
	for _, slot := range created {
		createdHours[slot.Hour] = struct{}{}
		resp.Created = append(resp.Created, models.FromDomain(slot))
	}
	for _, h := range hours {
		if _, ok := createdHours[h]; !ok {
			resp.SkippedHours = append(resp.SkippedHours, h)
		}
	}

	if len(created) > 0 {
		s.invalidate(ctx)
	}

	s.logger.Info("BulkCreate: created=%d, skipped=%d", len(resp.Created), len(resp.SkippedHours))
	return resp, nil
}

// EnsureDefaults засевает полный диапазон часов, если слотов еще нет
func (s *Service) EnsureDefaults(ctx context.Context) error {
	existing, err := s.slotRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaults - list slots: %v", ErrInternal, err)
	}
	if len(existing) > 0 {
		return nil
	}

	resp, err := s.BulkCreate(ctx, domain.MinSlotHour, domain.MaxSlotHour)
	if err != nil {
		return err
	}

	s.logger.Info("EnsureDefaults: seeded %d default time slots", len(resp.Created))
	return nil
}

// invalidate не зависит от отмены запроса, изменение уже закоммичено
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("failed to invalidate status cache: %v", err)
	}
}

func validateHour(hour int) error {
	if !domain.IsValidSlotHour(hour) {
		return fmt.Errorf("%w: hour must be between %d and %d, got %d",
			ErrInvalidHour, domain.MinSlotHour, domain.MaxSlotHour, hour)
	}
	return nil
}
