package check_availability

import "github.com/m04kA/SMC-RentalService/pkg/types"

// Request модель запроса проверки доступности камеры для продления
type Request struct {
	RentalID   int64
	NewEndDate types.Date
	UserID     int64
	IsAdmin    bool
}

// Response результат проверки доступности
type Response struct {
	RentalID       int64      `json:"rentalId"`
	CurrentEndDate types.Date `json:"currentEndDate"`
	NewEndDate     types.Date `json:"newEndDate"`

	IsAvailable          bool    `json:"isAvailable"`
	Reason               string  `json:"reason,omitempty"`
	ConflictingRentalIDs []int64 `json:"conflictingRentalIds,omitempty"`

	ExtensionDays   int     `json:"extensionDays"`
	AdditionalPrice float64 `json:"additionalPrice"`
}
