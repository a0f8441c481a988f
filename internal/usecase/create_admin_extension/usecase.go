package create_admin_extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/internal/service/payments"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

// UseCase use case создания продления админом
type UseCase struct {
	rentalRepo    RentalRepository
	extensionRepo ExtensionRepository
	eligibility   EligibilityChecker
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
	eligibility EligibilityChecker,
	availability AvailabilityChecker,
	payments PaymentService,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo:    rentalRepo,
		extensionRepo: extensionRepo,
		eligibility:   eligibility,
		availability:  availability,
		payments:      payments,
		txManager:     txManager,
		publisher:     publisher,
		logger:        logger,
	}
}

// Execute создает продление от имени админа.
// Чек загружается до транзакции, продление и платёж пишутся атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAdminExtension: rental=%d, admin=%d, newEndDate=%s, proof=%t",
		req.RentalID, req.AdminID, req.NewEndDate, req.PaymentProof != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAdminExtension: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем аренду
	rental, err := uc.getRental(ctx, req.RentalID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем право на продление
	if err := uc.checkEligible(ctx, rental); err != nil {
		return nil, err
	}

	// 4. Проверяем даты и считаем доплату
	if err := check_availability.ValidateNewEndDate(rental.EndDate, req.NewEndDate); err != nil {
		uc.logger.Warn("CreateAdminExtension: %v", err)
		return nil, err
	}

	// 5. Загружаем чек до записи в БД
	var proof *filestorage.StoredFile
	if req.PaymentProof != nil {
		proof, err = uc.payments.UploadProof(ctx, rental.ID, *req.PaymentProof)
		if err != nil {
			if errors.Is(err, payments.ErrInvalidProof) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidProof, err)
			}
			uc.logger.Error("CreateAdminExtension: proof upload failed for rental id=%d: %v", rental.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrProofUploadFailed, err)
		}
	}

	notes := normalizeNotes(req.AdminNotes)

	var (
		ext     *domain.Extension
		payment *domain.Payment
	)

	// 6. Продление и платёж в одной транзакции под блокировкой камеры
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 6.1. Сериализуем работу с камерой
		if err := uc.rentalRepo.LockCamera(txCtx, rental.CameraID); err != nil {
			uc.logger.Error("CreateAdminExtension: failed to lock camera=%d: %v", rental.CameraID, err)
			return fmt.Errorf("%w: failed to lock camera: %v", ErrInternal, err)
		}

		// 6.2. Перечитываем аренду, дата окончания могла сдвинуться
		locked, err := uc.getRental(txCtx, req.RentalID)
		if err != nil {
			return err
		}

		// 6.3. Окно продления должно быть свободно от confirmed/active аренд
		check, err := uc.availability.CheckRental(txCtx, locked, req.NewEndDate)
		if err != nil {
			if errors.Is(err, check_availability.ErrEndDateNotAfterCurrent) {
				return err
			}
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}

		if !check.IsAvailable {
			uc.logger.Warn("CreateAdminExtension: camera=%d unavailable: %s", locked.CameraID, check.Reason)
			return fmt.Errorf("%w: %s", ErrCameraUnavailable, check.Reason)
		}

		// 6.4. Создаем продление с ролью admin
		created, err := uc.extensionRepo.Create(txCtx, &domain.Extension{
			RentalID:         locked.ID,
			OriginalEndDate:  locked.EndDate,
			RequestedEndDate: req.NewEndDate,
			ExtensionDays:    check.ExtensionDays,
			AdditionalPrice:  check.AdditionalPrice,
			Status:           domain.ExtensionPending,
			RequestedBy:      req.AdminID,
			RequestedByRole:  domain.RoleAdmin,
			AdminNotes:       notes,
		})
		if err != nil {
			if errors.Is(err, extensionRepo.ErrPendingExists) {
				uc.logger.Warn("CreateAdminExtension: rental id=%d already has a pending extension", locked.ID)
				return ErrPendingExtensionExists
			}
			uc.logger.Error("CreateAdminExtension: failed to create extension: %v", err)
			return fmt.Errorf("%w: failed to create extension: %v", ErrInternal, err)
		}

		// 6.5. Платёж: submitted при наличии чека, иначе pending
		p, err := uc.payments.CreateExtensionPayment(txCtx, &paymentModels.CreateExtensionPaymentRequest{
			ExtensionID: created.ID,
			RentalID:    locked.ID,
			UserID:      locked.UserID,
			Amount:      created.AdditionalPrice,
			Proof:       proof,
		})
		if err != nil {
			uc.logger.Error("CreateAdminExtension: failed to create payment for extension id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}

		ext = created
		payment = p
		return nil
	})

	if err != nil {
		if proof != nil {
			uc.logger.Warn("CreateAdminExtension: uploaded proof %s is orphaned after rollback", proof.Path)
		}
		return nil, err
	}

	// 7. Публикуем изменения после коммита
	uc.publisher.Publish(ctx, realtime.ExtensionCreated(ext.ID), realtime.PaymentCreated(payment.ID))

	uc.logger.Info("CreateAdminExtension: created extension id=%d (%d days, %.2f), payment id=%d status=%s",
		ext.ID, ext.ExtensionDays, ext.AdditionalPrice, payment.ID, payment.Status)

	return &Response{
		ExtensionID:      ext.ID,
		RentalID:         ext.RentalID,
		OriginalEndDate:  ext.OriginalEndDate,
		RequestedEndDate: ext.RequestedEndDate,
		ExtensionDays:    ext.ExtensionDays,
		AdditionalPrice:  ext.AdditionalPrice,
		Status:           string(ext.Status),
		RequestedBy:      ext.RequestedBy,
		RequestedByRole:  string(ext.RequestedByRole),
		AdminNotes:       ext.AdminNotes,
		RequestedAt:      ext.RequestedAt,
		PaymentID:        payment.ID,
		PaymentStatus:    string(payment.Status),
		ProofURL:         payment.ProofURL,
	}, nil
}

func (uc *UseCase) checkEligible(ctx context.Context, rental *domain.Rental) error {
	result, err := uc.eligibility.CheckRental(ctx, rental)
	if err != nil {
		uc.logger.Error("CreateAdminExtension: eligibility check failed for rental id=%d: %v", rental.ID, err)
		return fmt.Errorf("%w: eligibility check failed: %v", ErrInternal, err)
	}

	if !result.IsEligible {
		uc.logger.Warn("CreateAdminExtension: rental id=%d is not eligible: %s", rental.ID, result.Reason)
		return fmt.Errorf("%w: %s", ErrNotEligible, result.Reason)
	}

	return nil
}

func (uc *UseCase) getRental(ctx context.Context, id int64) (*domain.Rental, error) {
	rental, err := uc.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			uc.logger.Warn("CreateAdminExtension: rental id=%d not found", id)
			return nil, ErrRentalNotFound
		}
		uc.logger.Error("CreateAdminExtension: failed to get rental id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
	}
	return rental, nil
}
