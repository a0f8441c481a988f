package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе продления
	ErrInvalidStatus = errors.New("invalid extension status")
)

// Request модели

// GetAllExtensionsRequest фильтр списка продлений для админки
type GetAllExtensionsRequest struct {
	Status   *string `json:"status,omitempty"`
	UserID   *int64  `json:"userId,omitempty"`
	RentalID *int64  `json:"rentalId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAllExtensionsRequest) ToDomainFilter() (domain.ExtensionsFilter, error) {
	filter := domain.ExtensionsFilter{
		UserID:   r.UserID,
		RentalID: r.RentalID,
	}

	if r.Status != nil {
		status := domain.ExtensionStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ExtensionResponse продление с данными аренды и платежом
type ExtensionResponse struct {
	ID               int64      `json:"id"`
	RentalID         int64      `json:"rentalId"`
	UserID           int64      `json:"userId"`
	CameraID         int64      `json:"cameraId"`
	CameraName       string     `json:"cameraName"`
	RentalStartDate  types.Date `json:"rentalStartDate"`
	RentalEndDate    types.Date `json:"rentalEndDate"`
	RentalStatus     string     `json:"rentalStatus"`
	OriginalEndDate  types.Date `json:"originalEndDate"`
	RequestedEndDate types.Date `json:"requestedEndDate"`
	ExtensionDays    int        `json:"extensionDays"`
	AdditionalPrice  float64    `json:"additionalPrice"`
	Status           string     `json:"extensionStatus"`
	RequestedBy      int64      `json:"requestedBy"`
	RequestedByRole  string     `json:"requestedByRole"`
	AdminNotes       *string    `json:"adminNotes,omitempty"`
	RequestedAt      time.Time  `json:"requestedAt"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy       *int64     `json:"approvedBy,omitempty"`
	RejectedAt       *time.Time `json:"rejectedAt,omitempty"`
	RejectedBy       *int64     `json:"rejectedBy,omitempty"`

	Payment *paymentModels.PaymentResponse `json:"payment,omitempty"`
}

// ExtensionListResponse ответ со списком продлений
type ExtensionListResponse struct {
	Extensions []ExtensionResponse `json:"extensions"`
}

// FromDomainExtension конвертирует domain модель в DTO
func FromDomainExtension(e *domain.ExtensionWithRental, payment *domain.Payment) *ExtensionResponse {
	if e == nil {
		return nil
	}

	return &ExtensionResponse{
		ID:               e.ID,
		RentalID:         e.RentalID,
		UserID:           e.UserID,
		CameraID:         e.CameraID,
		CameraName:       e.CameraName,
		RentalStartDate:  e.RentalStartDate,
		RentalEndDate:    e.RentalEndDate,
		RentalStatus:     string(e.RentalStatus),
		OriginalEndDate:  e.OriginalEndDate,
		RequestedEndDate: e.RequestedEndDate,
		ExtensionDays:    e.ExtensionDays,
		AdditionalPrice:  e.AdditionalPrice,
		Status:           string(e.Status),
		RequestedBy:      e.RequestedBy,
		RequestedByRole:  string(e.RequestedByRole),
		AdminNotes:       e.AdminNotes,
		RequestedAt:      e.RequestedAt,
		ApprovedAt:       e.ApprovedAt,
		ApprovedBy:       e.ApprovedBy,
		RejectedAt:       e.RejectedAt,
		RejectedBy:       e.RejectedBy,
		Payment:          paymentModels.FromDomainPayment(payment),
	}
}

// FromDomainExtensionList собирает список, подставляя платёж по extension_id
func FromDomainExtensionList(list []*domain.ExtensionWithRental, payments []*domain.Payment) *ExtensionListResponse {
	byExtension := make(map[int64]*domain.Payment, len(payments))
	for _, p := range payments {
		if p.ExtensionID != nil {
			byExtension[*p.ExtensionID] = p
		}
	}

	resp := &ExtensionListResponse{
		Extensions: make([]ExtensionResponse, 0, len(list)),
	}

	for _, e := range list {
		if r := FromDomainExtension(e, byExtension[e.ID]); r != nil {
			resp.Extensions = append(resp.Extensions, *r)
		}
	}

	return resp
}
