package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase use case проверки, свободна ли камера на период продления
type UseCase struct {
	rentalRepo RentalRepository
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rentalRepo RentalRepository, logger Logger) *UseCase {
	return &UseCase{
		rentalRepo: rentalRepo,
		logger:     logger,
	}
}

// Execute проверяет доступность камеры аренды до новой даты окончания.
// Только чтение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: rental=%d, newEndDate=%s, user=%d", req.RentalID, req.NewEndDate, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем аренду
	rental, err := uc.rentalRepo.GetByID(ctx, req.RentalID)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			uc.logger.Warn("CheckAvailability: rental id=%d not found", req.RentalID)
			return nil, ErrRentalNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get rental id=%d: %v", req.RentalID, err)
		return nil, fmt.Errorf("%w: failed to get rental: %v", ErrInternal, err)
	}

	// 3. Чужие аренды видит только админ: ответ раскрывает конфликтующие аренды
	if !req.IsAdmin && rental.UserID != req.UserID {
		uc.logger.Warn("CheckAvailability: access denied for user=%d to rental id=%d", req.UserID, rental.ID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем окно продления
	return uc.CheckRental(ctx, rental, req.NewEndDate)
}

// CheckRental проверяет уже загруженную аренду.
// Вызывается и внутри транзакции под блокировкой камеры.
func (uc *UseCase) CheckRental(ctx context.Context, rental *domain.Rental, newEnd types.Date) (*Response, error) {
	if err := ValidateNewEndDate(rental.EndDate, newEnd); err != nil {
		uc.logger.Warn("CheckAvailability: rental id=%d: %v", rental.ID, err)
		return nil, err
	}

	// Окно [currentEnd+1, newEnd], сама аренда исключается
	from, to := domain.ExtensionWindow(rental.EndDate, newEnd)

	conflicts, err := uc.rentalRepo.FindOverlapping(ctx, rental.CameraID, from, to,
		domain.AvailabilityBlockingStatuses, rental.ID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to find overlapping rentals for camera=%d: %v", rental.CameraID, err)
		return nil, fmt.Errorf("%w: failed to find overlapping rentals: %v", ErrInternal, err)
	}

	quote := domain.QuoteExtension(rental.EndDate, newEnd, rental.PricePerDay)

	resp := &Response{
		RentalID:        rental.ID,
		CurrentEndDate:  rental.EndDate,
		NewEndDate:      newEnd,
		IsAvailable:     len(conflicts) == 0,
		ExtensionDays:   quote.Days,
		AdditionalPrice: quote.Price,
	}

	if !resp.IsAvailable {
		resp.ConflictingRentalIDs = make([]int64, 0, len(conflicts))
		for _, c := range conflicts {
			resp.ConflictingRentalIDs = append(resp.ConflictingRentalIDs, c.ID)
		}
		resp.Reason = fmt.Sprintf("camera is already booked between %s and %s", from, to)

		uc.logger.Warn("CheckAvailability: camera=%d is busy in [%s, %s], conflicts=%v",
			rental.CameraID, from, to, resp.ConflictingRentalIDs)
		return resp, nil
	}

	uc.logger.Info("CheckAvailability: camera=%d is free in [%s, %s], days=%d, price=%.2f",
		rental.CameraID, from, to, quote.Days, quote.Price)
	return resp, nil
}
