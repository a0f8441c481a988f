package check_eligibility

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
)

// UseCase use case проверки права на продление
type UseCase struct {
	rentalRepo    RentalRepository
	extensionRepo ExtensionRepository
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rentalRepo RentalRepository, extensionRepo ExtensionRepository, logger Logger) *UseCase {
	return &UseCase{
		rentalRepo:    rentalRepo,
		extensionRepo: extensionRepo,
		logger:        logger,
	}
}

// Execute проверяет, что аренду можно продлить.
// Спрашивать может владелец аренды или админ.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckEligibility: rental=%d, user=%d", req.RentalID, req.UserID)

	if req.RentalID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: rentalID and userID must be positive", ErrInvalidInput)
	}

	rental, err := uc.rentalRepo.GetByID(ctx, req.RentalID)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			uc.logger.Warn("CheckEligibility: rental id=%d not found", req.RentalID)
			return nil, ErrRentalNotFound
		}
		uc.logger.Error("CheckEligibility: failed to get rental id=%d: %v", req.RentalID, err)
		return nil, fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
	}

	if !req.IsAdmin && rental.UserID != req.UserID {
		uc.logger.Warn("CheckEligibility: access denied for user=%d to rental id=%d", req.UserID, rental.ID)
		return nil, ErrAccessDenied
	}

	return uc.CheckRental(ctx, rental)
}

// CheckRental проверяет уже загруженную аренду
func (uc *UseCase) CheckRental(ctx context.Context, rental *domain.Rental) (*Response, error) {
	resp := &Response{RentalID: rental.ID}

	// 1. Аренда должна быть активной
	if rental.RentalStatus != domain.RentalActive {
		resp.Reason = fmt.Sprintf("rental is not active (status: %s)", rental.RentalStatus)
		uc.logger.Warn("CheckEligibility: rental id=%d: %s", rental.ID, resp.Reason)
		return resp, nil
	}

	// 2. Камера должна быть доставлена
	if rental.ShippingStatus != domain.ShippingDelivered {
		resp.Reason = fmt.Sprintf("rental has not been delivered (shipping status: %s)", rental.ShippingStatus)
		uc.logger.Warn("CheckEligibility: rental id=%d: %s", rental.ID, resp.Reason)
		return resp, nil
	}

	// 3. Не должно быть pending продления
	pending, err := uc.extensionRepo.CountPendingByRental(ctx, rental.ID)
	if err != nil {
		uc.logger.Error("CheckEligibility: failed to count pending extensions for rental id=%d: %v", rental.ID, err)
		return nil, fmt.Errorf("%w: failed to count pending extensions: %v", ErrInternal, err)
	}

	if pending > 0 {
		resp.Reason = "rental already has a pending extension request"
		uc.logger.Warn("CheckEligibility: rental id=%d: %s", rental.ID, resp.Reason)
		return resp, nil
	}

	resp.IsEligible = true
	uc.logger.Info("CheckEligibility: rental id=%d is eligible", rental.ID)
	return resp, nil
}
