package get_court_status

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// UseCase use case для получения сетки статусов площадок
// Только чтение: блокировок нет, сетка может отражать незавершенные изменения
type UseCase struct {
	sportRepo    SportRepository
	courtRepo    CourtRepository
	slotRepo     TimeSlotRepository
	bookingRepo  BookingRepository
	cache        GridCache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, если кеш выключен
func NewUseCase(
	sportRepo SportRepository,
	courtRepo CourtRepository,
	slotRepo TimeSlotRepository,
	bookingRepo BookingRepository,
	cache GridCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sportRepo:    sportRepo,
		courtRepo:    courtRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время и нормализуем дату
	now := uc.timeProvider.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	date = domain.NormalizeDate(date)

	uc.logger.Info("GetCourtStatus: sport=%q, date=%s", req.SportID, date.Format(domain.DateFormat))

	// 2. Виды спорта
	sports, err := uc.sportRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetCourtStatus: failed to list sports: %v", err)
		return nil, fmt.Errorf("%w: failed to list sports: %v", ErrInternal, err)
	}
	if len(sports) == 0 {
		return nil, ErrNoSports
	}

	// 3. Выбранный вид спорта (по умолчанию первый по имени)
	selected, err := selectSport(sports, req.SportID)
	if err != nil {
		uc.logger.Warn("GetCourtStatus: sport %q not found", req.SportID)
		return nil, err
	}

	// 4. Сетка из кеша или из БД
	grid, err := uc.loadGrid(ctx, selected.ID, date)
	if err != nil {
		return nil, err
	}

	return &Response{
		Date:          date,
		CurrentTime:   now,
		Sports:        sports,
		SelectedSport: selected,
		Grid:          *grid,
	}, nil
}

func (uc *UseCase) loadGrid(ctx context.Context, sportID string, date time.Time) (*Grid, error) {
	// Версия берется до чтения из БД
	grid, version, ok := uc.cachedGrid(ctx, sportID, date)
	if ok {
		return grid, nil
	}

	slots, err := uc.slotRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetCourtStatus: failed to list time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list time slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		return nil, ErrNoTimeSlots
	}

	courts, err := uc.courtRepo.ListBySport(ctx, sportID)
	if err != nil {
		uc.logger.Error("GetCourtStatus: failed to list courts for sport=%s: %v", sportID, err)
		return nil, fmt.Errorf("%w: failed to list courts: %v", ErrInternal, err)
	}
	if len(courts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCourts, sportID)
	}

	bookings, err := uc.bookingRepo.GetBySportAndDate(ctx, sportID, date)
	if err != nil {
		uc.logger.Error("GetCourtStatus: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	fresh := buildGrid(courts, slots, bookings)
	uc.storeGrid(ctx, version, &fresh)

	return &fresh, nil
}

// cachedGrid ошибки кеша деградируют до чтения из БД
func (uc *UseCase) cachedGrid(ctx context.Context, sportID string, date time.Time) (*Grid, string, bool) {
	if uc.cache == nil {
		return nil, "", false
	}

	data, version, ok, err := uc.cache.Get(ctx, sportID, date)
	if err != nil {
		uc.logger.Warn("GetCourtStatus: cache get failed: %v", err)
		uc.metrics.RecordCache("error")
		return nil, version, false
	}
	if !ok {
		uc.metrics.RecordCache("miss")
		return nil, version, false
	}

	var grid Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		uc.logger.Warn("GetCourtStatus: cached grid is corrupted: %v", err)
		uc.metrics.RecordCache("error")
		return nil, version, false
	}

	uc.metrics.RecordCache("hit")
	return &grid, version, true
}

// storeGrid без версии (кеш недоступен) ничего не сохраняет
func (uc *UseCase) storeGrid(ctx context.Context, version string, grid *Grid) {
	if uc.cache == nil || version == "" {
		return
	}

	data, err := json.Marshal(grid)
	if err != nil {
		uc.logger.Warn("GetCourtStatus: failed to encode grid: %v", err)
		return
	}

	if err := uc.cache.Set(ctx, version, data); err != nil {
		uc.logger.Warn("GetCourtStatus: cache set failed: %v", err)
	}
}

func selectSport(sports []*domain.Sport, sportID string) (*domain.Sport, error) {
	if sportID == "" {
		return sports[0], nil
	}
	for _, s := range sports {
		if s.ID == sportID {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSportNotFound, sportID)
}
