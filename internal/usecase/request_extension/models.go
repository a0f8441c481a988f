package request_extension

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса продления от арендатора
type Request struct {
	RentalID   int64
	UserID     int64
	NewEndDate types.Date
}

// Response созданное продление и его платёж
type Response struct {
	ExtensionID      int64      `json:"extensionId"`
	RentalID         int64      `json:"rentalId"`
	OriginalEndDate  types.Date `json:"originalEndDate"`
	RequestedEndDate types.Date `json:"requestedEndDate"`
	ExtensionDays    int        `json:"extensionDays"`
	AdditionalPrice  float64    `json:"additionalPrice"`
	Status           string     `json:"extensionStatus"`
	RequestedByRole  string     `json:"requestedByRole"`
	RequestedAt      time.Time  `json:"requestedAt"`

	PaymentID     int64  `json:"paymentId"`
	PaymentStatus string `json:"paymentStatus"`
}
