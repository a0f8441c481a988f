package confirm_rental

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные и собирает решение
func validateRequest(req *Request) (domain.ResolutionDecision, error) {
	decision := domain.ResolutionDecision{
		Action:          domain.ResolutionAction(req.Action),
		SelectedUnitID:  req.SelectedUnitID,
		RejectionReason: req.RejectionReason,
	}

	if req.RentalID <= 0 {
		return decision, fmt.Errorf("%w: rentalID must be positive", ErrInvalidInput)
	}

	if req.AdminID <= 0 {
		return decision, fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}

	switch decision.Action {
	case domain.ResolutionConfirm, domain.ResolutionTransfer, domain.ResolutionRejectCurrent,
		domain.ResolutionRejectConflicts, domain.ResolutionConfirmAnyway:
	default:
		return decision, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if utf8.RuneCountInString(decision.Reason()) > domain.MaxRejectReasonLength {
		return decision, fmt.Errorf("%w: rejection reason must be at most %d characters",
			ErrInvalidInput, domain.MaxRejectReasonLength)
	}

	return decision, nil
}

// mapResolutionError переводит ошибки проверки решения в ошибки use case
func mapResolutionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrActionNotOffered):
		return fmt.Errorf("%w: %v", ErrActionNotAvailable, err)
	case errors.Is(err, domain.ErrUnitNotAvailable):
		return fmt.Errorf("%w: %v", ErrUnitNotAvailable, err)
	default:
		// ErrUnitRequired, ErrReasonRequired
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// lockOrder камеры в порядке возрастания id
func lockOrder(cameraID int64, selected *int64) []int64 {
	if selected == nil || *selected == cameraID {
		return []int64{cameraID}
	}
	if *selected < cameraID {
		return []int64{*selected, cameraID}
	}
	return []int64{cameraID, *selected}
}
