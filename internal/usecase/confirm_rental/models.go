package confirm_rental

// Request решение админа по pending аренде
type Request struct {
	RentalID        int64
	AdminID         int64
	Action          string
	SelectedUnitID  *int64
	RejectionReason string
}

// Response итог подтверждения
type Response struct {
	RentalID          int64   `json:"rentalId"`
	Action            string  `json:"action"`
	RentalStatus      string  `json:"rentalStatus"`
	CameraID          int64   `json:"cameraId"`
	RejectedRentalIDs []int64 `json:"rejectedRentalIds"`
	DoubleBooked      bool    `json:"doubleBooked"`
}
