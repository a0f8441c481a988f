package domain

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ExtensionStatus status of an extension request
type ExtensionStatus string

const (
	ExtensionPending  ExtensionStatus = "pending"
	ExtensionApproved ExtensionStatus = "approved"
	ExtensionRejected ExtensionStatus = "rejected"
)

// RequesterRole who created the extension request
type RequesterRole string

const (
	RoleUser  RequesterRole = "user"
	RoleAdmin RequesterRole = "admin"
)

// IsValid проверяет, что статус известен
func (s ExtensionStatus) IsValid() bool {
	return s == ExtensionPending || s == ExtensionApproved || s == ExtensionRejected
}

// Extension request to push a rental's end date later.
// Transitions once from pending to approved or rejected.
type Extension struct {
	ID       int64
	RentalID int64

	OriginalEndDate  types.Date
	RequestedEndDate types.Date
	ExtensionDays    int
	AdditionalPrice  float64

	Status          ExtensionStatus
	RequestedBy     int64
	RequestedByRole RequesterRole
	AdminNotes      *string

	RequestedAt time.Time
	ApprovedAt  *time.Time
	ApprovedBy  *int64
	RejectedAt  *time.Time
	RejectedBy  *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if an admin has not decided yet
func (e *Extension) IsPending() bool {
	return e.Status == ExtensionPending
}

// ExtensionWithRental extension row joined with its parent rental and camera
type ExtensionWithRental struct {
	Extension

	UserID          int64
	CameraID        int64
	CameraName      string
	RentalStartDate types.Date
	RentalEndDate   types.Date
	RentalStatus    RentalStatus
	PricePerDay     float64
}

// ExtensionsFilter фильтр списка продлений в админке
type ExtensionsFilter struct {
	Status   *ExtensionStatus
	UserID   *int64
	RentalID *int64
}

// ExtensionQuote computed day count and price for moving end date
type ExtensionQuote struct {
	Days  int
	Price float64
}

// QuoteExtension считает дни и доплату за продление с currentEnd до newEnd
func QuoteExtension(currentEnd, newEnd types.Date, pricePerDay float64) ExtensionQuote {
	days := currentEnd.DaysUntil(newEnd)
	return ExtensionQuote{
		Days:  days,
		Price: float64(days) * pricePerDay,
	}
}

// ExtensionWindow days the unit must additionally be free: [currentEnd+1, newEnd]
func ExtensionWindow(currentEnd, newEnd types.Date) (types.Date, types.Date) {
	return currentEnd.AddDays(1), newEnd
}
