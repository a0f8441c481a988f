package create_admin_extension

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Request модель запроса продления от админа
type Request struct {
	RentalID     int64
	AdminID      int64
	NewEndDate   types.Date
	AdminNotes   *string
	PaymentProof *filestorage.File // чек оплаты (опционально)
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
	RequestedBy      int64      `json:"requestedBy"`
	RequestedByRole  string     `json:"requestedByRole"`
	AdminNotes       *string    `json:"adminNotes,omitempty"`
	RequestedAt      time.Time  `json:"requestedAt"`

	PaymentID     int64   `json:"paymentId"`
	PaymentStatus string  `json:"paymentStatus"`
	ProofURL      *string `json:"proofUrl,omitempty"`
}
