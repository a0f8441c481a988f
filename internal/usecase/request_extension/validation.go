package request_extension

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RentalID <= 0 {
		return fmt.Errorf("%w: rentalID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.NewEndDate.IsZero() {
		return fmt.Errorf("%w: newEndDate is required", ErrInvalidInput)
	}

	return nil
}

// validateOwner проверяет, что аренда принадлежит пользователю
func validateOwner(rental *domain.Rental, userID int64) error {
	if rental.UserID != userID {
		return ErrUnauthorized
	}
	return nil
}

// validateDays проверяет, что продление хотя бы на один день
func validateDays(days int) error {
	if days < domain.MinExtensionDays {
		return fmt.Errorf("%w: extension must be at least %d day", ErrEndDateNotAfterCurrent, domain.MinExtensionDays)
	}
	return nil
}
