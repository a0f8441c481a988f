package reject_extension

import "time"

// Request модель запроса отклонения продления
type Request struct {
	ExtensionID int64
	AdminID     int64
	Notes       *string
}

// Response отклонённое продление
type Response struct {
	ExtensionID int64      `json:"extensionId"`
	RentalID    int64      `json:"rentalId"`
	Status      string     `json:"extensionStatus"`
	AdminNotes  *string    `json:"adminNotes,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy  *int64     `json:"rejectedBy,omitempty"`
}
