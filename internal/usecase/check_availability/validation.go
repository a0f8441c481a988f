package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/pkg/types"
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

// ValidateNewEndDate проверяет, что новая дата окончания строго позже текущей (по календарным дням)
func ValidateNewEndDate(currentEnd, newEnd types.Date) error {
	if !newEnd.After(currentEnd) {
		return fmt.Errorf("%w: current=%s, requested=%s", ErrEndDateNotAfterCurrent, currentEnd, newEnd)
	}
	return nil
}
