package reject_extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// UseCase use case отклонения продления админом
type UseCase struct {
	extensionRepo ExtensionRepository
	notifier      Notifier
	publisher     Publisher
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(extensionRepo ExtensionRepository, notifier Notifier, publisher Publisher, logger Logger) *UseCase {
	return &UseCase{
		extensionRepo: extensionRepo,
		notifier:      notifier,
		publisher:     publisher,
		logger:        logger,
	}
}

// Execute отклоняет pending продление. Аренда не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectExtension: extension=%d, admin=%d", req.ExtensionID, req.AdminID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectExtension: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем продление, отклонить можно только pending
	ext, err := uc.getExtension(ctx, req.ExtensionID)
	if err != nil {
		return nil, err
	}

	if !ext.IsPending() {
		uc.logger.Warn("RejectExtension: extension id=%d is %s", ext.ID, ext.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrExtensionNotPending, ext.Status)
	}

	// 3. Отклоняем; повторная проверка статуса в UPDATE
	if err := uc.extensionRepo.Reject(ctx, ext.ID, req.AdminID, req.Notes); err != nil {
		if errors.Is(err, extensionRepo.ErrNotPending) {
			uc.logger.Warn("RejectExtension: extension id=%d was decided concurrently", ext.ID)
			return nil, fmt.Errorf("%w: by another admin", ErrExtensionNotPending)
		}
		uc.logger.Error("RejectExtension: failed to reject extension id=%d: %v", ext.ID, err)
		return nil, fmt.Errorf("%w: failed to reject extension: %v", ErrInternal, err)
	}

	ext.Status = domain.ExtensionRejected
	ext.RejectedBy = ptr.Ptr(req.AdminID)
	if req.Notes != nil {
		ext.AdminNotes = req.Notes
	}

	if reloaded, err := uc.extensionRepo.GetWithRentalByID(ctx, ext.ID); err == nil {
		ext = reloaded
	} else {
		uc.logger.Warn("RejectExtension: failed to reload extension id=%d: %v", ext.ID, err)
	}

	// 4. Публикуем изменение и уведомляем арендатора
	uc.publisher.Publish(ctx, realtime.ExtensionUpdated(ext.ID))

	if err := uc.notifier.ExtensionRejected(ctx, ext, req.Notes); err != nil {
		uc.logger.Warn("RejectExtension: failed to notify user=%d: %v", ext.UserID, err)
	}

	uc.logger.Info("RejectExtension: extension id=%d rejected", ext.ID)

	return &Response{
		ExtensionID: ext.ID,
		RentalID:    ext.RentalID,
		Status:      string(ext.Status),
		AdminNotes:  ext.AdminNotes,
		RejectedAt:  ext.RejectedAt,
		RejectedBy:  ext.RejectedBy,
	}, nil
}

func (uc *UseCase) getExtension(ctx context.Context, id int64) (*domain.ExtensionWithRental, error) {
	ext, err := uc.extensionRepo.GetWithRentalByID(ctx, id)
	if err != nil {
		if errors.Is(err, extensionRepo.ErrExtensionNotFound) {
			uc.logger.Warn("RejectExtension: extension id=%d not found", id)
			return nil, ErrExtensionNotFound
		}
		uc.logger.Error("RejectExtension: failed to get extension id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get extension: %v", ErrInternal, err)
	}
	return ext, nil
}
