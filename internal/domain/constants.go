package domain

// Business validation constants
const (
	MinExtensionDays      = 1
	MaxAdminNotesLength   = 1000
	MaxRejectReasonLength = 500
	MaxRentalDays         = 90
	MaxAdvanceRentalDays  = 180
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AvailabilityBlockingStatuses статусы аренд, которые занимают юнит при проверке продления
var AvailabilityBlockingStatuses = []RentalStatus{
	RentalConfirmed,
	RentalActive,
}

// ConflictStatuses статусы аренд, которые считаются конфликтом при подтверждении
var ConflictStatuses = []RentalStatus{
	RentalPending,
	RentalConfirmed,
	RentalActive,
}

// StatusStrings конвертирует статусы в строки для SQL фильтров
func StatusStrings(statuses []RentalStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
