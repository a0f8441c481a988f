package confirm_rental

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
)

// UseCase use case подтверждения pending аренды с разрешением конфликтов
type UseCase struct {
	rentalRepo RentalRepository
	planner    Planner
	notifier   Notifier
	txManager  TransactionManager
	publisher  Publisher
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rentalRepo RentalRepository,
	planner Planner,
	notifier Notifier,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo: rentalRepo,
		planner:    planner,
		notifier:   notifier,
		txManager:  txManager,
		publisher:  publisher,
		logger:     logger,
	}
}

// outcome что изменилось в транзакции
type outcome struct {
	rejected     []*domain.Rental
	rejectReason string
	confirmed    bool
	doubleBooked bool
}

// Execute применяет решение админа.
// Варианты пересчитываются под блокировкой камеры, проверка решения идёт до записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmRental: rental=%d, admin=%d, action=%s", req.RentalID, req.AdminID, req.Action)

	// 1. Валидация входных данных
	decision, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ConfirmRental: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем аренду, она должна ждать подтверждения
	rental, err := uc.getPending(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем решение по текущим вариантам до любых записей
	plan, err := uc.planner.BuildPlan(ctx, rental)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build plan: %v", ErrInternal, err)
	}

	if err := domain.ValidateResolution(plan, decision); err != nil {
		uc.logger.Warn("ConfirmRental: rental id=%d: %v", rental.ID, err)
		return nil, mapResolutionError(err)
	}

	var result outcome

	// 4. Применяем решение в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем камеру аренды и выбранный юнит
		for _, cameraID := range lockOrder(rental.CameraID, decision.SelectedUnitID) {
			if err := uc.rentalRepo.LockCamera(txCtx, cameraID); err != nil {
				uc.logger.Error("ConfirmRental: failed to lock camera=%d: %v", cameraID, err)
				return fmt.Errorf("%w: failed to lock camera: %v", ErrInternal, err)
			}
		}

		// 4.2. Перечитываем аренду и пересчитываем варианты под блокировкой
		locked, err := uc.getPending(txCtx, req.RentalID)
		if err != nil {
			return err
		}

		lockedPlan, err := uc.planner.BuildPlan(txCtx, locked)
		if err != nil {
			return fmt.Errorf("%w: failed to build plan: %v", ErrInternal, err)
		}

		if err := domain.ValidateResolution(lockedPlan, decision); err != nil {
			uc.logger.Warn("ConfirmRental: plan changed for rental id=%d: %v", locked.ID, err)
			return fmt.Errorf("%w: %v", ErrConflictsChanged, mapResolutionError(err))
		}

		// 4.3. Выполняем действие
		result, err = uc.apply(txCtx, locked, lockedPlan, decision)
		return err
	})

	if err != nil {
		return nil, err
	}

	// 5. Перечитываем аренду для ответа и уведомления
	final, err := uc.rentalRepo.GetByID(ctx, rental.ID)
	if err != nil {
		uc.logger.Warn("ConfirmRental: failed to reload rental id=%d: %v", rental.ID, err)
		final = rental
	}

	// 6. Публикуем изменения и уведомляем арендаторов
	uc.publish(ctx, final, result)
	uc.notify(ctx, final, result)

	resp := &Response{
		RentalID:          final.ID,
		Action:            string(decision.Action),
		RentalStatus:      string(final.RentalStatus),
		CameraID:          final.CameraID,
		RejectedRentalIDs: make([]int64, 0, len(result.rejected)),
		DoubleBooked:      result.doubleBooked,
	}
	for _, r := range result.rejected {
		resp.RejectedRentalIDs = append(resp.RejectedRentalIDs, r.ID)
	}

	uc.logger.Info("ConfirmRental: rental id=%d resolved with %s, status=%s, rejected=%v",
		final.ID, decision.Action, final.RentalStatus, resp.RejectedRentalIDs)

	return resp, nil
}

func (uc *UseCase) apply(
	ctx context.Context,
	rental *domain.Rental,
	plan domain.ResolutionOptions,
	decision domain.ResolutionDecision,
) (outcome, error) {
	var result outcome

	switch decision.Action {
	case domain.ResolutionConfirm:
		if err := uc.rentalRepo.Confirm(ctx, rental.ID); err != nil {
			return result, uc.mapWriteError("Confirm", rental.ID, err)
		}
		result.confirmed = true

	case domain.ResolutionTransfer:
		unitID := *decision.SelectedUnitID
		if err := uc.rentalRepo.TransferAndConfirm(ctx, rental.ID, unitID); err != nil {
			return result, uc.mapWriteError("TransferAndConfirm", rental.ID, err)
		}
		uc.logger.Info("ConfirmRental: rental id=%d transferred from camera=%d to camera=%d",
			rental.ID, rental.CameraID, unitID)
		result.confirmed = true

	case domain.ResolutionRejectCurrent:
		if err := uc.rentalRepo.Reject(ctx, []int64{rental.ID}, decision.Reason()); err != nil {
			return result, uc.mapWriteError("Reject", rental.ID, err)
		}
		result.rejected = []*domain.Rental{rental}
		result.rejectReason = decision.Reason()

	case domain.ResolutionRejectConflicts:
		pending := plan.Conflicts.Pending
		if err := uc.rentalRepo.Reject(ctx, plan.Conflicts.PendingIDs(), decision.Reason()); err != nil {
			return result, uc.mapWriteError("Reject", rental.ID, err)
		}
		if err := uc.rentalRepo.Confirm(ctx, rental.ID); err != nil {
			return result, uc.mapWriteError("Confirm", rental.ID, err)
		}
		result.rejected = pending
		result.rejectReason = decision.Reason()
		result.confirmed = true
		result.doubleBooked = len(plan.Conflicts.Confirmed) > 0

	case domain.ResolutionConfirmAnyway:
		if err := uc.rentalRepo.Confirm(ctx, rental.ID); err != nil {
			return result, uc.mapWriteError("Confirm", rental.ID, err)
		}
		uc.logger.Warn("ConfirmRental: rental id=%d force-confirmed on camera=%d, double booking: confirmed=%d, pending=%d",
			rental.ID, rental.CameraID, len(plan.Conflicts.Confirmed), len(plan.Conflicts.Pending))
		result.confirmed = true
		result.doubleBooked = true
	}

	return result, nil
}

func (uc *UseCase) publish(ctx context.Context, rental *domain.Rental, result outcome) {
	events := []realtime.Event{realtime.RentalUpdated(rental.ID)}
	for _, r := range result.rejected {
		if r.ID != rental.ID {
			events = append(events, realtime.RentalUpdated(r.ID))
		}
	}
	uc.publisher.Publish(ctx, events...)
}

func (uc *UseCase) notify(ctx context.Context, rental *domain.Rental, result outcome) {
	for _, r := range result.rejected {
		if err := uc.notifier.RentalRejected(ctx, r, result.rejectReason); err != nil {
			uc.logger.Warn("ConfirmRental: failed to notify user=%d about rejected rental id=%d: %v", r.UserID, r.ID, err)
		}
	}

	if result.confirmed {
		if err := uc.notifier.RentalConfirmed(ctx, rental); err != nil {
			uc.logger.Warn("ConfirmRental: failed to notify user=%d about confirmed rental id=%d: %v",
				rental.UserID, rental.ID, err)
		}
	}
}

func (uc *UseCase) getPending(ctx context.Context, id int64) (*domain.Rental, error) {
	rental, err := uc.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			uc.logger.Warn("ConfirmRental: rental id=%d not found", id)
			return nil, ErrRentalNotFound
		}
		uc.logger.Error("ConfirmRental: failed to get rental id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
	}

	if !rental.IsPending() {
		uc.logger.Warn("ConfirmRental: rental id=%d is %s", id, rental.RentalStatus)
		return nil, fmt.Errorf("%w: current status is %s", ErrRentalNotPending, rental.RentalStatus)
	}

	return rental, nil
}

func (uc *UseCase) mapWriteError(method string, rentalID int64, err error) error {
	if errors.Is(err, rentalRepo.ErrStatusChanged) {
		uc.logger.Warn("ConfirmRental: %s - rental status changed concurrently for rental id=%d: %v", method, rentalID, err)
		return fmt.Errorf("%w: %v", ErrConflictsChanged, err)
	}
	uc.logger.Error("ConfirmRental: %s - repository error for rental id=%d: %v", method, rentalID, err)
	return fmt.Errorf("%w: %s failed: %v", ErrInternal, method, err)
}
