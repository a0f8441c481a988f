package domain

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RentalStatus represents the status of a rental
type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
	RentalRejected  RentalStatus = "rejected"
)

// ShippingStatus represents the delivery state of the rented unit
type ShippingStatus string

const (
	ShippingPending          ShippingStatus = "pending"
	ShippingReadyForDelivery ShippingStatus = "ready_for_delivery"
	ShippingInTransit        ShippingStatus = "in_transit"
	ShippingDelivered        ShippingStatus = "delivered"
	ShippingReturned         ShippingStatus = "returned"
)

// Rental represents a booking of one physical camera unit for a date range
type Rental struct {
	ID       int64
	UserID   int64
	CameraID int64

	StartDate types.Date
	EndDate   types.Date

	RentalStatus   RentalStatus
	ShippingStatus ShippingStatus

	PricePerDay float64
	TotalPrice  float64

	RejectionReason *string

	// Denormalized camera data (filled by joined queries)
	CameraName   string
	CameraSerial string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the rental holds the unit and cannot be auto-rejected
func (r *Rental) IsBlocking() bool {
	return r.RentalStatus == RentalConfirmed || r.RentalStatus == RentalActive
}

// IsPending returns true if the rental awaits admin confirmation
func (r *Rental) IsPending() bool {
	return r.RentalStatus == RentalPending
}

// Days number of rented calendar days (inclusive range)
func (r *Rental) Days() int {
	return r.StartDate.DaysUntil(r.EndDate) + 1
}

// RentalsFilter фильтр для календаря бронирований в админке
type RentalsFilter struct {
	From     *types.Date    // Начало периода (опционально)
	To       *types.Date    // Конец периода (опционально)
	Status   *RentalStatus  // Фильтр по статусу (опционально)
	CameraID *int64         // Фильтр по камере (опционально)
	UserID   *int64         // Фильтр по пользователю (опционально)
	Shipping *ShippingStatus
}

var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalPending:   {RentalConfirmed, RentalRejected, RentalCancelled},
	RentalConfirmed: {RentalActive, RentalCancelled},
	RentalActive:    {RentalCompleted},
}

var shippingTransitions = map[ShippingStatus][]ShippingStatus{
	ShippingPending:          {ShippingReadyForDelivery},
	ShippingReadyForDelivery: {ShippingInTransit},
	ShippingInTransit:        {ShippingDelivered},
	ShippingDelivered:        {ShippingReturned},
}

// CanTransitionTo проверяет допустимость перехода статуса аренды
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус известен
func (s RentalStatus) IsValid() bool {
	switch s {
	case RentalPending, RentalConfirmed, RentalActive, RentalCompleted, RentalCancelled, RentalRejected:
		return true
	}
	return false
}

// CanTransitionTo проверяет допустимость перехода статуса доставки
func (s ShippingStatus) CanTransitionTo(next ShippingStatus) bool {
	for _, allowed := range shippingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус доставки известен
func (s ShippingStatus) IsValid() bool {
	switch s {
	case ShippingPending, ShippingReadyForDelivery, ShippingInTransit, ShippingDelivered, ShippingReturned:
		return true
	}
	return false
}
