package check_eligibility

// Request модель запроса проверки права на продление
type Request struct {
	RentalID int64
	UserID   int64
	IsAdmin  bool
}

// Response результат проверки, можно ли продлевать аренду
type Response struct {
	RentalID   int64  `json:"rentalId"`
	IsEligible bool   `json:"isEligible"`
	Reason     string `json:"reason,omitempty"`
}
