package create_rental

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CameraID <= 0 {
		return fmt.Errorf("%w: cameraID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	return nil
}

// validateDates проверяет период: не в прошлом, не длиннее MaxRentalDays,
// начало не дальше MaxAdvanceRentalDays от сегодня
func validateDates(start, end, today types.Date) error {
	if end.Before(start) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidDates)
	}

	if start.Before(today) {
		return fmt.Errorf("%w: startDate is in the past", ErrInvalidDates)
	}

	if days := start.DaysUntil(end) + 1; days > domain.MaxRentalDays {
		return fmt.Errorf("%w: rental is longer than %d days", ErrInvalidDates, domain.MaxRentalDays)
	}

	if today.DaysUntil(start) > domain.MaxAdvanceRentalDays {
		return fmt.Errorf("%w: startDate is more than %d days ahead", ErrInvalidDates, domain.MaxAdvanceRentalDays)
	}

	return nil
}
