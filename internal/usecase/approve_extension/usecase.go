package approve_extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// UseCase use case одобрения продления админом
type UseCase struct {
	extensionRepo ExtensionRepository
	rentalRepo    RentalRepository
	notifier      Notifier
	txManager     TransactionManager
	publisher     Publisher
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	extensionRepo ExtensionRepository,
	rentalRepo RentalRepository,
	notifier Notifier,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		extensionRepo: extensionRepo,
		rentalRepo:    rentalRepo,
		notifier:      notifier,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}
}

// Execute одобряет pending продление и переносит дату окончания аренды.
// Обе записи в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveExtension: extension=%d, admin=%d", req.ExtensionID, req.AdminID)

	// 1. Валидация входных данных
	if req.ExtensionID <= 0 || req.AdminID <= 0 {
		return nil, fmt.Errorf("%w: extensionID and adminID must be positive", ErrInvalidInput)
	}

	// 2. Получаем продление и проверяем статус
	ext, err := uc.getExtension(ctx, req.ExtensionID)
	if err != nil {
		return nil, err
	}

	if !ext.IsPending() {
		uc.logger.Warn("ApproveExtension: extension id=%d is %s", ext.ID, ext.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrExtensionNotPending, ext.Status)
	}

	// 3. Одобрение и перенос даты в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Сериализуем изменения по камере
		if err := uc.rentalRepo.LockCamera(txCtx, ext.CameraID); err != nil {
			uc.logger.Error("ApproveExtension: failed to lock camera=%d: %v", ext.CameraID, err)
			return fmt.Errorf("%w: failed to lock camera: %v", ErrInternal, err)
		}

		// 3.2. Окно продления могли занять подтверждённой арендой, пока запрос ждал решения
		if err := uc.checkWindow(txCtx, ext); err != nil {
			return err
		}

		// 3.3. Помечаем продление одобренным (только из pending)
		if err := uc.extensionRepo.Approve(txCtx, ext.ID, req.AdminID); err != nil {
			if errors.Is(err, extensionRepo.ErrNotPending) {
				uc.logger.Warn("ApproveExtension: extension id=%d was decided concurrently", ext.ID)
				return fmt.Errorf("%w: by another admin", ErrExtensionNotPending)
			}
			uc.logger.Error("ApproveExtension: failed to approve extension id=%d: %v", ext.ID, err)
			return fmt.Errorf("%w: failed to approve extension: %v", ErrInternal, err)
		}

		// 3.4. Переносим дату окончания аренды
		if err := uc.rentalRepo.UpdateEndDate(txCtx, ext.RentalID, ext.RequestedEndDate, ext.AdditionalPrice); err != nil {
			uc.logger.Error("ApproveExtension: failed to update rental id=%d end date: %v", ext.RentalID, err)
			return fmt.Errorf("%w: %v", ErrRentalUpdateFailed, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Перечитываем продление для ответа
	approved, err := uc.extensionRepo.GetWithRentalByID(ctx, ext.ID)
	if err != nil {
		uc.logger.Warn("ApproveExtension: failed to reload extension id=%d: %v", ext.ID, err)
		approved = ext
		approved.Status = domain.ExtensionApproved
		approved.ApprovedBy = ptr.Ptr(req.AdminID)
		approved.RentalEndDate = ext.RequestedEndDate
	}

	// 5. Публикуем изменения и уведомляем арендатора
	uc.publisher.Publish(ctx, realtime.ExtensionUpdated(ext.ID), realtime.RentalUpdated(ext.RentalID))

	if err := uc.notifier.ExtensionApproved(ctx, approved); err != nil {
		uc.logger.Warn("ApproveExtension: failed to notify user=%d: %v", approved.UserID, err)
	}

	uc.logger.Info("ApproveExtension: extension id=%d approved, rental id=%d now ends %s",
		ext.ID, ext.RentalID, ext.RequestedEndDate)

	return &Response{
		ExtensionID:      approved.ID,
		RentalID:         approved.RentalID,
		Status:           string(approved.Status),
		OriginalEndDate:  approved.OriginalEndDate,
		RequestedEndDate: approved.RequestedEndDate,
		RentalEndDate:    approved.RentalEndDate,
		ExtensionDays:    approved.ExtensionDays,
		AdditionalPrice:  approved.AdditionalPrice,
		ApprovedAt:       approved.ApprovedAt,
		ApprovedBy:       approved.ApprovedBy,
	}, nil
}

// checkWindow ищет confirmed/active аренды той же камеры в [original_end+1, requested_end]
func (uc *UseCase) checkWindow(ctx context.Context, ext *domain.ExtensionWithRental) error {
	from, to := domain.ExtensionWindow(ext.OriginalEndDate, ext.RequestedEndDate)

	conflicts, err := uc.rentalRepo.FindOverlapping(ctx, ext.CameraID, from, to,
		domain.AvailabilityBlockingStatuses, ext.RentalID)
	if err != nil {
		uc.logger.Error("ApproveExtension: failed to find overlapping rentals for camera=%d: %v", ext.CameraID, err)
		return fmt.Errorf("%w: failed to find overlapping rentals: %v", ErrInternal, err)
	}

	if len(conflicts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}

	uc.logger.Warn("ApproveExtension: camera=%d is busy in [%s, %s], conflicts=%v, extension id=%d",
		ext.CameraID, from, to, ids, ext.ID)
	return fmt.Errorf("%w: camera is already booked between %s and %s (rentals %v)",
		ErrCameraUnavailable, from, to, ids)
}

func (uc *UseCase) getExtension(ctx context.Context, id int64) (*domain.ExtensionWithRental, error) {
	ext, err := uc.extensionRepo.GetWithRentalByID(ctx, id)
	if err != nil {
		if errors.Is(err, extensionRepo.ErrExtensionNotFound) {
			uc.logger.Warn("ApproveExtension: extension id=%d not found", id)
			return nil, ErrExtensionNotFound
		}
		uc.logger.Error("ApproveExtension: failed to get extension id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get extension: %v", ErrInternal, err)
	}
	return ext, nil
}
