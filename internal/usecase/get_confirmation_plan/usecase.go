package get_confirmation_plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
)

// UseCase use case построения вариантов подтверждения pending аренды
type UseCase struct {
	rentalRepo RentalRepository
	cameraRepo CameraRepository
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rentalRepo RentalRepository, cameraRepo CameraRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		rentalRepo: rentalRepo,
		cameraRepo: cameraRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute возвращает конфликты, свободные юниты и допустимые действия.
// Все чтения из одного снимка.
func (uc *UseCase) Execute(ctx context.Context, rentalID int64) (*Response, error) {
	uc.logger.Info("GetConfirmationPlan: rental=%d", rentalID)

	if rentalID <= 0 {
		return nil, fmt.Errorf("%w: rentalID must be positive", ErrInvalidInput)
	}

	var (
		rental *domain.Rental
		opts   domain.ResolutionOptions
	)

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		r, err := uc.rentalRepo.GetByID(txCtx, rentalID)
		if err != nil {
			if errors.Is(err, rentalRepo.ErrRentalNotFound) {
				uc.logger.Warn("GetConfirmationPlan: rental id=%d not found", rentalID)
				return ErrRentalNotFound
			}
			uc.logger.Error("GetConfirmationPlan: failed to get rental id=%d: %v", rentalID, err)
			return fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
		}

		if !r.IsPending() {
			uc.logger.Warn("GetConfirmationPlan: rental id=%d is %s", rentalID, r.RentalStatus)
			return fmt.Errorf("%w: current status is %s", ErrRentalNotPending, r.RentalStatus)
		}

		o, err := uc.BuildPlan(txCtx, r)
		if err != nil {
			return err
		}

		rental = r
		opts = o
		return nil
	})

	if err != nil {
		return nil, err
	}

	return FromDomainOptions(rental, opts), nil
}

// BuildPlan собирает конфликты и свободные юниты для аренды.
// Используется и при подтверждении внутри транзакции.
func (uc *UseCase) BuildPlan(ctx context.Context, rental *domain.Rental) (domain.ResolutionOptions, error) {
	// 1. Пересекающиеся аренды той же камеры
	overlapping, err := uc.rentalRepo.FindOverlapping(ctx, rental.CameraID, rental.StartDate, rental.EndDate,
		domain.ConflictStatuses, rental.ID)
	if err != nil {
		uc.logger.Error("GetConfirmationPlan: failed to find conflicts for rental id=%d: %v", rental.ID, err)
		return domain.ResolutionOptions{}, fmt.Errorf("%w: failed to find conflicts: %v", ErrInternal, err)
	}

	conflicts := domain.PartitionConflicts(overlapping)

	// 2. Свободные юниты ищем только при наличии конфликтов
	var units []*domain.Camera
	if conflicts.HasAny() {
		units, err = uc.cameraRepo.FindAvailableUnits(ctx, rental.CameraName, rental.CameraID,
			rental.StartDate, rental.EndDate, domain.ConflictStatuses, rental.ID)
		if err != nil {
			uc.logger.Error("GetConfirmationPlan: failed to find available units for %q: %v", rental.CameraName, err)
			return domain.ResolutionOptions{}, fmt.Errorf("%w: failed to find available units: %v", ErrInternal, err)
		}
	}

	// 3. Варианты разрешения
	opts := domain.BuildResolutionOptions(conflicts, units)

	uc.logger.Info("GetConfirmationPlan: rental id=%d: confirmed=%d, pending=%d, units=%d, default=%s",
		rental.ID, len(conflicts.Confirmed), len(conflicts.Pending), len(units), opts.Default)

	return opts, nil
}
