package approve_extension

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса одобрения продления
type Request struct {
	ExtensionID int64
	AdminID     int64
}

// Response одобренное продление и новая дата окончания аренды
type Response struct {
	ExtensionID      int64      `json:"extensionId"`
	RentalID         int64      `json:"rentalId"`
	Status           string     `json:"extensionStatus"`
	OriginalEndDate  types.Date `json:"originalEndDate"`
	RequestedEndDate types.Date `json:"requestedEndDate"`
	RentalEndDate    types.Date `json:"rentalEndDate"`
	ExtensionDays    int        `json:"extensionDays"`
	AdditionalPrice  float64    `json:"additionalPrice"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy       *int64     `json:"approvedBy,omitempty"`
}
