package reconcile_booking

import (
	"context"
)

// cleanupPlan ключи фото, которые нужно удалить после фиксации мутации
// Один и тот же ключ планируется не более одного раза
type cleanupPlan struct {
	scheduled map[string]struct{}
	keys      []string
}

func newCleanupPlan() *cleanupPlan {
	return &cleanupPlan{scheduled: make(map[string]struct{})}
}

func (p *cleanupPlan) schedule(key string) {
	if key == "" {
		return
	}
	if _, ok := p.scheduled[key]; ok {
		return
	}
	p.scheduled[key] = struct{}{}
	p.keys = append(p.keys, key)
}

func (p *cleanupPlan) isEmpty() bool {
	return len(p.keys) == 0
}

// runCleanup выполняет удаления независимо друг от друга
// Ключи, на которые еще ссылается какое-либо бронирование, пропускаются.
// Ошибки логируются и учитываются в метриках, но не возвращаются
func (uc *UseCase) runCleanup(ctx context.Context, plan *cleanupPlan) {
	if plan.isEmpty() {
		return
	}

	referenced, err := uc.bookingRepo.GetReferencedAttachmentKeys(ctx, plan.keys)
	if err != nil {
		uc.logger.Error("ReconcileBooking: cleanup skipped, failed to check references for %d key(s): %v", len(plan.keys), err)
		uc.metrics.RecordAttachmentCleanupFailure()
		return
	}

	for _, key := range plan.keys {
		if _, ok := referenced[key]; ok {
			uc.logger.Info("ReconcileBooking: attachment %s is still referenced, keeping it", key)
			continue
		}

		if err := uc.store.Delete(ctx, key); err != nil {
			uc.logger.Warn("ReconcileBooking: failed to delete attachment %s: %v", key, err)
			uc.metrics.RecordAttachmentCleanupFailure()
			continue
		}

		uc.logger.Info("ReconcileBooking: attachment %s deleted", key)
	}
}
