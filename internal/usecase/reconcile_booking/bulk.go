package reconcile_booking

import (
	"context"
	"fmt"

	"github.com/AryanshKukreja/court-status-service/internal/domain"
)

// ExecuteBulk согласует несколько слотов одной площадки на одну дату
// Общие поля валидируются целиком до любых мутаций. Дальше каждый слот
// обрабатывается независимо: ошибка одного не останавливает остальные.
// Общее фото удаляется один раз, если его не сохранил ни один слот
func (uc *UseCase) ExecuteBulk(ctx context.Context, req *BulkRequest) (*BulkResponse, error) {
	uc.logger.Info("ReconcileBookingBulk: court=%d, slots=%v, date=%s, status=%s, user=%s",
		req.CourtID, req.SlotIDs, req.Date.Format(domain.DateFormat), req.Status, req.Actor.ID)

	// 1. Валидация общих полей
	t, err := validateTarget(req.CourtID, req.Date, req.Status, req.BookingBy, req.Attachment, req.Actor, uc.requirePhoto)
	if err == nil && len(req.SlotIDs) == 0 {
		err = fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if err != nil {
		uc.logger.Warn("ReconcileBookingBulk: validation failed: %v", err)
		uc.discardUpload(ctx, req.Attachment)
		return nil, err
	}

	// 2. Слоты и площадка загружаются один раз
	slots, err := uc.listSlots(ctx)
	if err != nil {
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	court, err := uc.getCourt(ctx, t.courtID)
	if err != nil {
		uc.discardUpload(ctx, t.attachment)
		return nil, err
	}

	resp := &BulkResponse{
		CourtID:   court.ID,
		CourtName: court.Name,
		Date:      t.date,
		Status:    t.status,
		BookingBy: t.bookingBy,
		Results:   make([]SlotResult, 0, len(req.SlotIDs)),
	}

	// 3. Обработка слотов по очереди
	plan := newCleanupPlan()
	retainedBy := 0
	seen := make(map[int]struct{}, len(req.SlotIDs))

	for _, slotID := range req.SlotIDs {
		if _, dup := seen[slotID]; dup {
			continue
		}
		seen[slotID] = struct{}{}

		result := SlotResult{SlotID: slotID}

		slot, err := resolveSlot(slots, slotID)
		if err != nil {
			result.Err = err
			resp.Results = append(resp.Results, result)
			resp.Failed++
			continue
		}
		result.TimeSlot = slot.Label()

		outcome, err := uc.reconcileCell(ctx, t, court, slot)
		if err != nil {
			uc.logger.Warn("ReconcileBookingBulk: court=%d, slot=%d failed: %v", court.ID, slotID, err)
			result.Err = err
			resp.Results = append(resp.Results, result)
			resp.Failed++
			continue
		}

		for _, key := range outcome.obsolete {
			plan.schedule(key)
		}
		if outcome.retained {
			retainedBy++
		}

		uc.metrics.RecordBookingAction(string(outcome.action))

		result.Success = true
		result.Action = outcome.action
		resp.Results = append(resp.Results, result)
		resp.Succeeded++
	}

	// 4. Общее фото, не сохраненное ни одним слотом
	if t.attachment != nil {
		if retainedBy == 0 {
			plan.schedule(t.attachment.Key)
		} else {
			resp.Attachment = t.attachment
		}
	}
	uc.runCleanup(context.WithoutCancel(ctx), plan)

	// 5. Инвалидация кеша сетки
	if resp.Succeeded > 0 {
		uc.invalidate(ctx, court.SportID, t.date)
	}

	resp.Total = len(resp.Results)
	resp.Partial = resp.Succeeded > 0 && resp.Failed > 0

	uc.logger.Info("ReconcileBookingBulk: court=%d, date=%s: succeeded=%d, failed=%d",
		court.ID, t.date.Format(domain.DateFormat), resp.Succeeded, resp.Failed)

	return resp, nil
}
