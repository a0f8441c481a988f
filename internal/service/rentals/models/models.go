package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid rental status")

	// ErrInvalidShippingStatus возвращается при некорректном статусе доставки
	ErrInvalidShippingStatus = errors.New("invalid shipping status")

	// ErrInvalidPeriod возвращается, если начало периода позже конца
	ErrInvalidPeriod = errors.New("from must not be after to")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса аренды
type UpdateStatusRequest struct {
	AdminID int64  `json:"adminId"`
	Status  string `json:"status"`
}

// UpdateShippingRequest запрос на обновление статуса доставки
type UpdateShippingRequest struct {
	AdminID int64  `json:"adminId"`
	Status  string `json:"shippingStatus"`
}

// GetUserRentalsRequest запрос на получение аренд пользователя
type GetUserRentalsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetRentalsRequest запрос календаря аренд для админки
type GetRentalsRequest struct {
	From     *types.Date `json:"from,omitempty"`     // Начало периода (опционально)
	To       *types.Date `json:"to,omitempty"`       // Конец периода (опционально)
	Status   *string     `json:"status,omitempty"`   // Фильтр по статусу (опционально)
	Shipping *string     `json:"shipping,omitempty"` // Фильтр по доставке (опционально)
	CameraID *int64      `json:"cameraId,omitempty"`
	UserID   *int64      `json:"userId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRentalsRequest) ToDomainFilter() (domain.RentalsFilter, error) {
	filter := domain.RentalsFilter{
		From:     r.From,
		To:       r.To,
		CameraID: r.CameraID,
		UserID:   r.UserID,
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainRentalStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Shipping != nil {
		shipping, err := ToDomainShippingStatus(*r.Shipping)
		if err != nil {
			return filter, err
		}
		filter.Shipping = &shipping
	}

	return filter, nil
}

// Response модели

// RentalResponse ответ с данными аренды
type RentalResponse struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	CameraID        int64      `json:"cameraId"`
	CameraName      string     `json:"cameraName"`
	CameraSerial    string     `json:"cameraSerial"`
	StartDate       types.Date `json:"startDate"` // "2024-01-05"
	EndDate         types.Date `json:"endDate"`
	Days            int        `json:"days"`
	RentalStatus    string     `json:"rentalStatus"`
	ShippingStatus  string     `json:"shippingStatus"`
	PricePerDay     float64    `json:"pricePerDay"`
	TotalPrice      float64    `json:"totalPrice"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// RentalListResponse ответ со списком аренд
type RentalListResponse struct {
	Rentals []RentalResponse `json:"rentals"`
}

// Методы конвертации

// FromDomainRental конвертирует domain модель в DTO
func FromDomainRental(r *domain.Rental) *RentalResponse {
	if r == nil {
		return nil
	}

	return &RentalResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		CameraID:        r.CameraID,
		CameraName:      r.CameraName,
		CameraSerial:    r.CameraSerial,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Days:            r.Days(),
		RentalStatus:    string(r.RentalStatus),
		ShippingStatus:  string(r.ShippingStatus),
		PricePerDay:     r.PricePerDay,
		TotalPrice:      r.TotalPrice,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainRentalList конвертирует список domain моделей в DTO
func FromDomainRentalList(rentals []*domain.Rental) *RentalListResponse {
	resp := &RentalListResponse{
		Rentals: make([]RentalResponse, 0, len(rentals)),
	}

	for _, r := range rentals {
		if item := FromDomainRental(r); item != nil {
			resp.Rentals = append(resp.Rentals, *item)
		}
	}

	return resp
}

// ToDomainRentalStatus конвертирует строку в domain.RentalStatus с валидацией
func ToDomainRentalStatus(status string) (domain.RentalStatus, error) {
	s := domain.RentalStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainShippingStatus конвертирует строку в domain.ShippingStatus с валидацией
func ToDomainShippingStatus(status string) (domain.ShippingStatus, error) {
	s := domain.ShippingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidShippingStatus
	}
	return s, nil
}
