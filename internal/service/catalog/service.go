package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	courtRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/court"
	sportRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/sport"
	"github.com/AryanshKukreja/court-status-service/internal/service/catalog/models"
)

// Service сервис справочника видов спорта и площадок
type Service struct {
	sportRepo   SportRepository
	courtRepo   CourtRepository
	bookingRepo BookingRepository
	cache       StatusCache
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса
// cache может быть nil, если кеш выключен
func NewService(
	sportRepo SportRepository,
	courtRepo CourtRepository,
	bookingRepo BookingRepository,
	cache StatusCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		sportRepo:   sportRepo,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		txManager:   txManager,
		logger:      logger,
	}
}

// ListSports возвращает виды спорта по имени
func (s *Service) ListSports(ctx context.Context) ([]models.SportResponse, error) {
	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSports: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSports - repository error: %v", ErrInternal, err)
	}

	result := make([]models.SportResponse, 0, len(sports))
	for _, sport := range sports {
		result = append(result, models.FromDomainSport(sport))
	}
	return result, nil
}

// ListSportsWithCourts возвращает виды спорта с количеством площадок
func (s *Service) ListSportsWithCourts(ctx context.Context) ([]models.SportWithCourtsResponse, error) {
	sports, err := s.sportRepo.ListWithCourtCount(ctx)
	if err != nil {
		s.logger.Error("ListSportsWithCourts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSportsWithCourts - repository error: %v", ErrInternal, err)
	}

	result := make([]models.SportWithCourtsResponse, 0, len(sports))
	for _, sport := range sports {
		result = append(result, models.SportWithCourtsResponse{
			ID:         sport.ID,
			Name:       sport.Name,
			CourtCount: sport.CourtCount,
		})
	}
	return result, nil
}

// GetSportWithCourts возвращает вид спорта со списком площадок
func (s *Service) GetSportWithCourts(ctx context.Context, sportID string) (*models.SportWithCourtsResponse, error) {
	sport, err := s.getSport(ctx, "GetSportWithCourts", sportID)
	if err != nil {
		return nil, err
	}

	courts, err := s.courtRepo.ListBySport(ctx, sportID)
	if err != nil {
		s.logger.Error("GetSportWithCourts: failed to list courts for sport=%s: %v", sportID, err)
		return nil, fmt.Errorf("%w: GetSportWithCourts - list courts: %v", ErrInternal, err)
	}

	return &models.SportWithCourtsResponse{
		ID:         sport.ID,
		Name:       sport.Name,
		CourtCount: len(courts),
		Courts:     models.FromDomainCourts(courts),
	}, nil
}

// CreateSport создает вид спорта и автоматически DefaultCourtsPerSport площадок
// Вид спорта и площадки создаются в одной транзакции
func (s *Service) CreateSport(ctx context.Context, req *models.CreateSportRequest) (*models.SportWithCourtsResponse, error) {
	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)

	s.logger.Info("CreateSport: id=%s, name=%s", id, name)

	// 1. Валидация
	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrInvalidInput)
	}
	if !domain.IsValidSportID(id) {
		return nil, fmt.Errorf("%w: id must contain only lowercase letters, numbers and hyphens", ErrInvalidInput)
	}

	// 2. Вид спорта и площадки
	sport := &domain.Sport{ID: id, Name: name}
	courts := make([]*domain.Court, 0, domain.DefaultCourtsPerSport)
	for i := 1; i <= domain.DefaultCourtsPerSport; i++ {
		courts = append(courts, &domain.Court{SportID: id, Name: domain.CourtName(name, i)})
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.sportRepo.Create(txCtx, sport); err != nil {
			if errors.Is(err, sportRepo.ErrDuplicateSport) {
				return ErrSportAlreadyExists
			}
			return fmt.Errorf("%w: CreateSport - create sport: %v", ErrInternal, err)
		}

		if err := s.courtRepo.CreateBatch(txCtx, courts); err != nil {
			return fmt.Errorf("%w: CreateSport - create courts: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSportAlreadyExists) {
			s.logger.Warn("CreateSport: sport id=%s or name=%s already exists", id, name)
		} else {
			s.logger.Error("CreateSport: %v", err)
		}
		return nil, err
	}

	s.logger.Info("CreateSport: created sport id=%s with %d courts", id, len(courts))

	return &models.SportWithCourtsResponse{
		ID:         sport.ID,
		Name:       sport.Name,
		CourtCount: len(courts),
		Courts:     models.FromDomainCourts(courts),
	}, nil
}

// UpdateCourtCount увеличивает или уменьшает количество площадок
// Уменьшение удаляет последние созданные площадки и отклоняется целиком,
// если у любой из них есть бронирования
func (s *Service) UpdateCourtCount(ctx context.Context, req *models.UpdateCourtCountRequest) (*models.ResizeResponse, error) {
	s.logger.Info("UpdateCourtCount: sport=%s, count=%d", req.SportID, req.Count)

	// 1. Валидация
	if req.Count < domain.MinCourtsPerSport || req.Count > domain.MaxCourtsPerSport {
		return nil, fmt.Errorf("%w: court count must be between %d and %d",
			ErrInvalidInput, domain.MinCourtsPerSport, domain.MaxCourtsPerSport)
	}

	sport, err := s.getSport(ctx, "UpdateCourtCount", req.SportID)
	if err != nil {
		return nil, err
	}

	resp := &models.ResizeResponse{
		SportID: sport.ID,
		Added:   []models.CourtResponse{},
		Removed: []models.CourtResponse{},
	}

	// 2. Изменение в одной транзакции; площадки блокируются до коммита,
	// поэтому новое бронирование не появится между подсчетом и удалением
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		courts, err := s.courtRepo.LockBySport(txCtx, sport.ID)
		if err != nil {
			return fmt.Errorf("%w: UpdateCourtCount - list courts: %v", ErrInternal, err)
		}

		resp.PreviousCount = len(courts)
		resp.CourtCount = req.Count

		switch {
		case req.Count > len(courts):
			added := nextCourts(sport, courts, req.Count-len(courts))
			if err := s.courtRepo.CreateBatch(txCtx, added); err != nil {
				return fmt.Errorf("%w: UpdateCourtCount - create courts: %v", ErrInternal, err)
			}
			resp.Added = models.FromDomainCourts(added)

		case req.Count < len(courts):
			removed := courts[req.Count:]
			ids := make([]int64, 0, len(removed))
			for _, c := range removed {
				ids = append(ids, c.ID)
			}

			bookings, err := s.bookingRepo.CountByCourtIDs(txCtx, ids)
			if err != nil {
				return fmt.Errorf("%w: UpdateCourtCount - count bookings: %v", ErrInternal, err)
			}
			if bookings > 0 {
				return &domain.DependentsError{
					Resource:   fmt.Sprintf("%d court(s) to remove", len(removed)),
					Dependents: "booking(s)",
					Count:      bookings,
				}
			}

			if _, err := s.courtRepo.DeleteByIDs(txCtx, ids); err != nil {
				if errors.Is(err, courtRepo.ErrCourtInUse) {
					return &domain.DependentsError{
						Resource:   fmt.Sprintf("%d court(s) to remove", len(removed)),
						Dependents: "booking(s)",
					}
				}
				return fmt.Errorf("%w: UpdateCourtCount - delete courts: %v", ErrInternal, err)
			}
			resp.Removed = models.FromDomainCourts(removed)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			s.logger.Warn("UpdateCourtCount: sport=%s: %v", sport.ID, err)
		} else {
			s.logger.Error("UpdateCourtCount: sport=%s: %v", sport.ID, err)
		}
		return nil, err
	}

	if resp.PreviousCount != resp.CourtCount {
		s.invalidate(ctx, sport.ID)
	}

	s.logger.Info("UpdateCourtCount: sport=%s: %d -> %d courts", sport.ID, resp.PreviousCount, resp.CourtCount)
	return resp, nil
}

// DeleteSport удаляет вид спорта без площадок
func (s *Service) DeleteSport(ctx context.Context, sportID string) error {
	s.logger.Info("DeleteSport: sport=%s", sportID)

	if _, err := s.getSport(ctx, "DeleteSport", sportID); err != nil {
		return err
	}

	courts, err := s.courtRepo.CountBySport(ctx, sportID)
	if err != nil {
		s.logger.Error("DeleteSport: failed to count courts: %v", err)
		return fmt.Errorf("%w: DeleteSport - count courts: %v", ErrInternal, err)
	}
	if courts > 0 {
		s.logger.Warn("DeleteSport: sport=%s still has %d courts", sportID, courts)
		return &domain.DependentsError{
			Resource:   "sport " + sportID,
			Dependents: "court(s)",
			Count:      courts,
		}
	}

	if err := s.sportRepo.Delete(ctx, sportID); err != nil {
		if errors.Is(err, sportRepo.ErrSportNotFound) {
			return ErrSportNotFound
		}
		s.logger.Error("DeleteSport: repository error: %v", err)
		return fmt.Errorf("%w: DeleteSport - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, sportID)
	s.logger.Info("DeleteSport: sport=%s deleted", sportID)
	return nil
}

func (s *Service) getSport(ctx context.Context, op, sportID string) (*domain.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		if errors.Is(err, sportRepo.ErrSportNotFound) {
			s.logger.Warn("%s: sport=%s not found", op, sportID)
			return nil, ErrSportNotFound
		}
		s.logger.Error("%s: failed to get sport=%s: %v", op, sportID, err)
		return nil, fmt.Errorf("%w: %s - get sport: %v", ErrInternal, op, err)
	}
	return sport, nil
}

// invalidate не зависит от отмены запроса, изменение уже закоммичено
func (s *Service) invalidate(ctx context.Context, sportID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSport(context.WithoutCancel(ctx), sportID); err != nil {
		s.logger.Warn("failed to invalidate status cache for sport=%s: %v", sportID, err)
	}
}

// nextCourts создает n площадок со следующими по порядку именами, пропуская занятые
func nextCourts(sport *domain.Sport, existing []*domain.Court, n int) []*domain.Court {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c.Name] = struct{}{}
	}

	result := make([]*domain.Court, 0, n)
	for i := len(existing) + 1; len(result) < n; i++ {
		name := domain.CourtName(sport.Name, i)
		if _, ok := taken[name]; ok {
			continue
		}
		result = append(result, &domain.Court{SportID: sport.ID, Name: name})
	}
	return result
}
