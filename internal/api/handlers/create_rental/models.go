package create_rental

import (
	"fmt"

	createRental "github.com/m04kA/SMC-RentalService/internal/usecase/create_rental"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// CreateRentalRequest HTTP request model
type CreateRentalRequest struct {
	CameraID  int64  `json:"cameraId"`
	StartDate string `json:"startDate"` // "2024-03-05"
	EndDate   string `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRentalRequest) ToUseCaseRequest(userID int64) (*createRental.Request, error) {
	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	end, err := types.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &createRental.Request{
		UserID:    userID,
		CameraID:  r.CameraID,
		StartDate: start,
		EndDate:   end,
	}, nil
}
