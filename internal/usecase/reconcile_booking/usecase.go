package reconcile_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
	bookingRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/booking"
	courtRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/court"
)

// UseCase движок согласования статуса ячейки (court, slot, date)
// Ячейка в статусе available не имеет строки в БД; booked и closed хранятся строкой.
// Единственная защита от гонок - уникальный индекс по (court, slot, date)
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     TimeSlotRepository
	courtRepo    CourtRepository
	store        AttachmentStore
	cache        StatusCache
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
	requirePhoto bool
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, если кеш выключен
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo TimeSlotRepository,
	courtRepo CourtRepository,
	store AttachmentStore,
	cache StatusCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	cfg Config,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		courtRepo:    courtRepo,
		store:        store,
		cache:        cache,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		requirePhoto: cfg.RequirePhoto,
	}
}

// cellOutcome результат согласования одной ячейки
type cellOutcome struct {
	action   domain.ReconcileAction
	booking  *domain.Booking
	retained bool     // новое фото сохранено в строке
	obsolete []string // ключи фото, ставшие ненужными после мутации
}

// Execute согласует одну ячейку с запрошенным статусом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReconcileBooking: court=%d, slot=%d, date=%s, status=%s, user=%s",
		req.CourtID, req.SlotID, req.Date.Format(domain.DateFormat), req.Status, req.Actor.ID)

	// 1. Валидация входных данных
	t, err := validateTarget(req.CourtID, req.Date, req.Status, req.BookingBy, req.Attachment, req.Actor, uc.requirePhoto)
	if err != nil {
		uc.logger.Warn("ReconcileBooking: validation failed: %v", err)
		uc.discardUpload(ctx, req.Attachment)
		return nil, err
	}

	// 2. Позиция слота -> запись слота
	slots, err := uc.listSlots(ctx)
	if err != nil {
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	slot, err := resolveSlot(slots, req.SlotID)
	if err != nil {
		uc.logger.Warn("ReconcileBooking: %v", err)
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	// 3. Площадка
	court, err := uc.getCourt(ctx, t.courtID)
	if err != nil {
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	// 4. Мутация строки
	outcome, err := uc.reconcileCell(ctx, t, court, slot)
	if err != nil {
		uc.logger.Warn("ReconcileBooking: court=%d, slot=%d failed: %v", court.ID, req.SlotID, err)
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	// 5. Очистка фото после фиксации мутации
	plan := newCleanupPlan()
	for _, key := range outcome.obsolete {
		plan.schedule(key)
	}
	if t.attachment != nil && !outcome.retained {
		plan.schedule(t.attachment.Key)
	}
	uc.runCleanup(context.WithoutCancel(ctx), plan)

	// 6. Инвалидация кеша сетки
	uc.invalidate(ctx, court.SportID, t.date)

	uc.metrics.RecordBookingAction(string(outcome.action))
	uc.logger.Info("ReconcileBooking: court=%d, slot=%d, date=%s -> %s",
		court.ID, req.SlotID, t.date.Format(domain.DateFormat), outcome.action)

	resp := &Response{
		CourtID:   court.ID,
		CourtName: court.Name,
		SlotID:    req.SlotID,
		TimeSlot:  slot.Label(),
		Date:      t.date,
		Status:    t.status,
		Action:    outcome.action,
		UpdatedBy: t.actor.Username,
	}
	if outcome.booking != nil {
		resp.BookingBy = outcome.booking.BookingBy
		resp.Attachment = outcome.booking.Attachment
	}

	return resp, nil
}

// reconcileCell выполняет чтение и одну мутацию строки в транзакции
func (uc *UseCase) reconcileCell(ctx context.Context, t *target, court *domain.Court, slot *domain.TimeSlot) (*cellOutcome, error) {
	key := domain.BookingKey{CourtID: court.ID, TimeSlotID: slot.ID, Date: t.date}

	var outcome *cellOutcome
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.FindByKey(txCtx, key)
		if err != nil {
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("ReconcileBooking: failed to find booking: %v", err)
				return fmt.Errorf("%w: failed to find booking: %v", ErrInternal, err)
			}
			existing = nil
		}

		if t.status == domain.StatusAvailable {
			outcome, err = uc.release(txCtx, existing)
		} else {
			outcome, err = uc.upsert(txCtx, key, existing, t)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

// release переводит ячейку в available удалением строки
func (uc *UseCase) release(ctx context.Context, existing *domain.Booking) (*cellOutcome, error) {
	if existing == nil {
		return &cellOutcome{action: domain.ActionAlreadyAvailable}, nil
	}

	if err := uc.bookingRepo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// строку уже удалил параллельный запрос, фото остается его заботой
			return &cellOutcome{action: domain.ActionDeleteFailed}, nil
		}
		uc.logger.Error("ReconcileBooking: failed to delete booking id=%d: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
	}

	outcome := &cellOutcome{action: domain.ActionDeleted}
	if existing.HasAttachment() {
		outcome.obsolete = append(outcome.obsolete, existing.AttachmentKey())
	}

	return outcome, nil
}

// upsert создает или перезаписывает строку для booked/closed
func (uc *UseCase) upsert(ctx context.Context, key domain.BookingKey, existing *domain.Booking, t *target) (*cellOutcome, error) {
	var (
		bookingBy  *string
		attachment *domain.Attachment
	)

	if t.status == domain.StatusBooked {
		bookingBy = t.bookingBy
		attachment = t.attachment
		if attachment == nil && existing != nil {
			attachment = existing.Attachment
		}
	}

	outcome := &cellOutcome{
		retained: t.attachment != nil && attachment != nil && attachment.Key == t.attachment.Key,
	}

	if existing != nil {
		oldKey := existing.AttachmentKey()

		existing.Status = t.status
		existing.BookingBy = bookingBy
		existing.Attachment = attachment
		existing.UserID = t.actor.ID
		existing.UserName = t.actor.Username

		if err := uc.bookingRepo.Update(ctx, existing); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, fmt.Errorf("%w: booking id=%d was deleted", ErrBookingConflict, existing.ID)
			}
			uc.logger.Error("ReconcileBooking: failed to update booking id=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if oldKey != "" && oldKey != existing.AttachmentKey() {
			outcome.obsolete = append(outcome.obsolete, oldKey)
		}

		outcome.action = domain.ActionUpdated
		outcome.booking = existing
		return outcome, nil
	}

	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		CourtID:    key.CourtID,
		TimeSlotID: key.TimeSlotID,
		Date:       key.Date,
		Status:     t.status,
		BookingBy:  bookingBy,
		Attachment: attachment,
		UserID:     t.actor.ID,
		UserName:   t.actor.Username,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			return nil, fmt.Errorf("%w: booking for this court, slot and date already exists", ErrBookingConflict)
		}
		uc.logger.Error("ReconcileBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	outcome.action = domain.ActionCreated
	outcome.booking = created
	return outcome, nil
}

func (uc *UseCase) listSlots(ctx context.Context) ([]*domain.TimeSlot, error) {
	slots, err := uc.slotRepo.List(ctx)
	if err != nil {
		uc.logger.Error("ReconcileBooking: failed to list time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list time slots: %v", ErrInternal, err)
	}
	return slots, nil
}

func (uc *UseCase) getCourt(ctx context.Context, id int64) (*domain.Court, error) {
	court, err := uc.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("ReconcileBooking: court id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrCourtNotFound, id)
		}
		uc.logger.Error("ReconcileBooking: failed to get court id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	return court, nil
}

// discardUpload удаляет загруженное фото, которое не попало ни в одну строку
func (uc *UseCase) discardUpload(ctx context.Context, attachment *domain.Attachment) {
	if attachment == nil || attachment.Key == "" {
		return
	}

	plan := newCleanupPlan()
	plan.schedule(attachment.Key)
	uc.runCleanup(context.WithoutCancel(ctx), plan)
}

// invalidate выполняется и после отключения клиента: изменение уже закоммичено
func (uc *UseCase) invalidate(ctx context.Context, sportID string, date time.Time) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(context.WithoutCancel(ctx), sportID, date); err != nil {
		uc.logger.Warn("ReconcileBooking: failed to invalidate status cache for sport=%s: %v", sportID, err)
	}
}
