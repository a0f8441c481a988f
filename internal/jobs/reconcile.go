package jobs

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
)

// ReconcileResult итог одного прогона сверки
type ReconcileResult struct {
	EndDatesFixed   int
	PaymentsCreated int
	Failed          int
}

// Reconciler чинит продления, оставшиеся в рассинхроне с арендой или без платежа
type Reconciler struct {
	extensionRepo ExtensionRepository
	rentalRepo    RentalRepository
	payments      PaymentService
	txManager     TransactionManager
	publisher     Publisher
	batchSize     int
	logger        Logger
}

// NewReconciler создает job сверки продлений
func NewReconciler(
	extensionRepo ExtensionRepository,
	rentalRepo RentalRepository,
	payments PaymentService,
	txManager TransactionManager,
	publisher Publisher,
	batchSize int,
	logger Logger,
) *Reconciler {
	return &Reconciler{
		extensionRepo: extensionRepo,
		rentalRepo:    rentalRepo,
		payments:      payments,
		txManager:     txManager,
		publisher:     publisher,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// ReconcileExtensions один прогон: сначала даты аренд, потом недостающие платежи.
// Ошибка по одному продлению не останавливает обработку остальных.
func (r *Reconciler) ReconcileExtensions(ctx context.Context) (ReconcileResult, error) {
	var result ReconcileResult

	// 1. Одобренные продления, которые не перенесли дату аренды
	outOfSync, err := r.extensionRepo.GetApprovedOutOfSync(ctx, r.batchSize)
	if err != nil {
		return result, fmt.Errorf("ReconcileExtensions: get approved out of sync: %w", err)
	}

	for _, ext := range outOfSync {
		fixed, err := r.syncEndDate(ctx, ext)
		if err != nil {
			r.logger.Error("ReconcileExtensions: extension id=%d: failed to sync rental end date: %v", ext.ID, err)
			result.Failed++
			continue
		}
		if fixed {
			result.EndDatesFixed++
		}
	}

	// 2. Продления без платежа
	withoutPayment, err := r.extensionRepo.GetWithoutPayment(ctx, r.batchSize)
	if err != nil {
		return result, fmt.Errorf("ReconcileExtensions: get without payment: %w", err)
	}

	for _, ext := range withoutPayment {
		payment, err := r.payments.EnsureExtensionPayment(ctx, ext.ID)
		if err != nil {
			r.logger.Error("ReconcileExtensions: extension id=%d: failed to create payment: %v", ext.ID, err)
			result.Failed++
			continue
		}
		r.logger.Info("ReconcileExtensions: extension id=%d: payment id=%d created", ext.ID, payment.ID)
		result.PaymentsCreated++
	}

	r.logger.Info("ReconcileExtensions: end dates fixed=%d, payments created=%d, failed=%d",
		result.EndDatesFixed, result.PaymentsCreated, result.Failed)

	return result, nil
}

// syncEndDate переносит дату аренды на requested_end_date под блокировкой камеры
func (r *Reconciler) syncEndDate(ctx context.Context, ext *domain.Extension) (bool, error) {
	rental, err := r.rentalRepo.GetByID(ctx, ext.RentalID)
	if err != nil {
		return false, err
	}

	fixed := false
	err = r.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := r.rentalRepo.LockCamera(txCtx, rental.CameraID); err != nil {
			return err
		}

		// Перечитываем под блокировкой, дату могли уже перенести
		locked, err := r.rentalRepo.GetByID(txCtx, ext.RentalID)
		if err != nil {
			return err
		}
		if !locked.EndDate.Before(ext.RequestedEndDate) {
			return nil
		}

		if err := r.rentalRepo.UpdateEndDate(txCtx, locked.ID, ext.RequestedEndDate, ext.AdditionalPrice); err != nil {
			return err
		}

		r.logger.Warn("ReconcileExtensions: rental id=%d end date moved %s -> %s for approved extension id=%d",
			locked.ID, locked.EndDate, ext.RequestedEndDate, ext.ID)
		fixed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if fixed {
		r.publisher.Publish(ctx, realtime.RentalUpdated(ext.RentalID))
	}
	return fixed, nil
}
