package request_extension

import (
	requestExtension "github.com/m04kA/SMC-RentalService/internal/usecase/request_extension"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RequestExtensionRequest HTTP request model
type RequestExtensionRequest struct {
	NewEndDate string `json:"newEndDate"` // "2024-01-13"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestExtensionRequest) ToUseCaseRequest(rentalID, userID int64) (*requestExtension.Request, error) {
	newEndDate, err := types.ParseDate(r.NewEndDate)
	if err != nil {
		return nil, err
	}

	return &requestExtension.Request{
		RentalID:   rentalID,
		UserID:     userID,
		NewEndDate: newEndDate,
	}, nil
}
