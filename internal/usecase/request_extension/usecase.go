package request_extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

// UseCase use case запроса продления арендатором
type UseCase struct {
	rentalRepo    RentalRepository
	extensionRepo ExtensionRepository
	availability  AvailabilityChecker
	payments      PaymentService
	txManager     TransactionManager
	publisher     Publisher
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rentalRepo RentalRepository,
	extensionRepo ExtensionRepository,
	availability AvailabilityChecker,
	payments PaymentService,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo:    rentalRepo,
		extensionRepo: extensionRepo,
		availability:  availability,
		payments:      payments,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}
}

// Execute создает pending продление и платёж-компаньон в одной транзакции.
// Права на продление (active + delivered) здесь не проверяются,
// второй pending запрос отсекает уникальный индекс в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestExtension: rental=%d, user=%d, newEndDate=%s", req.RentalID, req.UserID, req.NewEndDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestExtension: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем аренду и проверяем владельца до любых записей
	rental, err := uc.getRental(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}

	if err := validateOwner(rental, req.UserID); err != nil {
		uc.logger.Warn("RequestExtension: user=%d is not the owner of rental id=%d", req.UserID, req.RentalID)
		return nil, err
	}

	// 3. Проверяем порядок дат
	if err := check_availability.ValidateNewEndDate(rental.EndDate, req.NewEndDate); err != nil {
		uc.logger.Warn("RequestExtension: %v", err)
		return nil, err
	}

	var (
		ext     *domain.Extension
		payment *domain.Payment
	)

	// 4. Проверка доступности и запись под блокировкой камеры
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Сериализуем работу с камерой
		if err := uc.rentalRepo.LockCamera(txCtx, rental.CameraID); err != nil {
			uc.logger.Error("RequestExtension: failed to lock camera=%d: %v", rental.CameraID, err)
			return fmt.Errorf("%w: failed to lock camera: %v", ErrInternal, err)
		}

		// 4.2. Перечитываем аренду под блокировкой
		locked, err := uc.getRental(txCtx, req.RentalID)
		if err != nil {
			return err
		}

		// 4.3. Проверяем, свободна ли камера на окно продления
		check, err := uc.availability.CheckRental(txCtx, locked, req.NewEndDate)
		if err != nil {
			if errors.Is(err, check_availability.ErrEndDateNotAfterCurrent) {
				return err
			}
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.IsAvailable {
			uc.logger.Warn("RequestExtension: camera=%d unavailable: %s", locked.CameraID, check.Reason)
			return fmt.Errorf("%w: %s", ErrCameraUnavailable, check.Reason)
		}

		if err := validateDays(check.ExtensionDays); err != nil {
			return err
		}

		// 4.4. Создаем pending продление
		created, err := uc.extensionRepo.Create(txCtx, &domain.Extension{
			RentalID:         locked.ID,
			OriginalEndDate:  locked.EndDate,
			RequestedEndDate: req.NewEndDate,
			ExtensionDays:    check.ExtensionDays,
			AdditionalPrice:  check.AdditionalPrice,
			Status:           domain.ExtensionPending,
			RequestedBy:      req.UserID,
			RequestedByRole:  domain.RoleUser,
		})
		if err != nil {
			if errors.Is(err, extensionRepo.ErrPendingExists) {
				uc.logger.Warn("RequestExtension: rental id=%d already has a pending extension", locked.ID)
				return ErrPendingExtensionExists
			}
			uc.logger.Error("RequestExtension: failed to create extension: %v", err)
			return fmt.Errorf("%w: failed to create extension: %v", ErrInternal, err)
		}

		// 4.5. Создаем платёж-компаньон, при ошибке откатываем и продление
		p, err := uc.payments.CreateExtensionPayment(txCtx, &paymentModels.CreateExtensionPaymentRequest{
			ExtensionID: created.ID,
			RentalID:    locked.ID,
			UserID:      locked.UserID,
			Amount:      created.AdditionalPrice,
		})
		if err != nil {
			uc.logger.Error("RequestExtension: failed to create payment for extension id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}

		ext = created
		payment = p
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Публикуем изменения после коммита
	uc.publisher.Publish(ctx, realtime.ExtensionCreated(ext.ID), realtime.PaymentCreated(payment.ID))

	uc.logger.Info("RequestExtension: created extension id=%d (%d days, %.2f), payment id=%d",
		ext.ID, ext.ExtensionDays, ext.AdditionalPrice, payment.ID)

	return &Response{
		ExtensionID:      ext.ID,
		RentalID:         ext.RentalID,
		OriginalEndDate:  ext.OriginalEndDate,
		RequestedEndDate: ext.RequestedEndDate,
		ExtensionDays:    ext.ExtensionDays,
		AdditionalPrice:  ext.AdditionalPrice,
		Status:           string(ext.Status),
		RequestedByRole:  string(ext.RequestedByRole),
		RequestedAt:      ext.RequestedAt,
		PaymentID:        payment.ID,
		PaymentStatus:    string(payment.Status),
	}, nil
}

func (uc *UseCase) getRental(ctx context.Context, id int64) (*domain.Rental, error) {
	rental, err := uc.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			uc.logger.Warn("RequestExtension: rental id=%d not found", id)
			return nil, ErrRentalNotFound
		}
		uc.logger.Error("RequestExtension: failed to get rental id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
	}
	return rental, nil
}
