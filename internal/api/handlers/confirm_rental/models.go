package confirm_rental

import (
	confirmRental "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_rental"
)

// ConfirmRentalRequest HTTP request model
type ConfirmRentalRequest struct {
	Action          string `json:"action"`
	SelectedUnitID  *int64 `json:"selectedUnitId,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в request use case
func (r *ConfirmRentalRequest) ToUseCaseRequest(rentalID, adminID int64) *confirmRental.Request {
	return &confirmRental.Request{
		RentalID:        rentalID,
		AdminID:         adminID,
		Action:          r.Action,
		SelectedUnitID:  r.SelectedUnitID,
		RejectionReason: r.RejectionReason,
	}
}
