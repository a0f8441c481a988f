package get_confirmation_plan

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ConflictResponse пересекающаяся аренда
type ConflictResponse struct {
	RentalID     int64      `json:"rentalId"`
	UserID       int64      `json:"userId"`
	StartDate    types.Date `json:"startDate"`
	EndDate      types.Date `json:"endDate"`
	RentalStatus string     `json:"rentalStatus"`
}

// UnitResponse свободный юнит той же модели
type UnitResponse struct {
	CameraID     int64   `json:"cameraId"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serialNumber"`
	PricePerDay  float64 `json:"pricePerDay"`
}

// Response варианты подтверждения аренды
type Response struct {
	RentalID           int64              `json:"rentalId"`
	CameraID           int64              `json:"cameraId"`
	StartDate          types.Date         `json:"startDate"`
	EndDate            types.Date         `json:"endDate"`
	HasConflicts       bool               `json:"hasConflicts"`
	ConfirmedConflicts []ConflictResponse `json:"confirmedConflicts"`
	PendingConflicts   []ConflictResponse `json:"pendingConflicts"`
	AvailableUnits     []UnitResponse     `json:"availableUnits"`
	Actions            []string           `json:"actions"`
	DefaultAction      string             `json:"defaultAction"`
	Warning            string             `json:"warning"`
	WarningText        string             `json:"warningText,omitempty"`
}

// FromDomainOptions конвертирует варианты разрешения в DTO
func FromDomainOptions(rental *domain.Rental, opts domain.ResolutionOptions) *Response {
	resp := &Response{
		RentalID:           rental.ID,
		CameraID:           rental.CameraID,
		StartDate:          rental.StartDate,
		EndDate:            rental.EndDate,
		HasConflicts:       opts.HasConflicts,
		ConfirmedConflicts: toConflicts(opts.Conflicts.Confirmed),
		PendingConflicts:   toConflicts(opts.Conflicts.Pending),
		AvailableUnits:     make([]UnitResponse, 0, len(opts.AvailableUnits)),
		Actions:            make([]string, 0, len(opts.Actions)),
		DefaultAction:      string(opts.Default),
		Warning:            string(opts.Warning),
		WarningText:        opts.WarningText,
	}

	for _, u := range opts.AvailableUnits {
		resp.AvailableUnits = append(resp.AvailableUnits, UnitResponse{
			CameraID:     u.ID,
			Name:         u.Name,
			SerialNumber: u.SerialNumber,
			PricePerDay:  u.PricePerDay,
		})
	}

	for _, a := range opts.Actions {
		resp.Actions = append(resp.Actions, string(a))
	}

	return resp
}

func toConflicts(rentals []*domain.Rental) []ConflictResponse {
	result := make([]ConflictResponse, 0, len(rentals))
	for _, r := range rentals {
		result = append(result, ConflictResponse{
			RentalID:     r.ID,
			UserID:       r.UserID,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			RentalStatus: string(r.RentalStatus),
		})
	}
	return result
}
