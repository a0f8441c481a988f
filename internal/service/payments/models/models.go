package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
)

// Request модели

// CreateExtensionPaymentRequest платёж-компаньон для продления
type CreateExtensionPaymentRequest struct {
	ExtensionID int64
	RentalID    int64
	UserID      int64
	Amount      float64
	Proof       *filestorage.StoredFile // уже загруженный чек (опционально)
}

// AttachPaymentRequest создание платежа или прикладывание чека к существующему
type AttachPaymentRequest struct {
	ExtensionID int64
	ActorID     int64
	IsAdmin     bool
	Proof       *filestorage.File
}

// RejectPaymentRequest отклонение платежа админом
type RejectPaymentRequest struct {
	AdminID int64  `json:"adminId"`
	Reason  string `json:"reason"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID              int64      `json:"id"`
	RentalID        int64      `json:"rentalId"`
	UserID          int64      `json:"userId"`
	ExtensionID     *int64     `json:"extensionId,omitempty"`
	Type            string     `json:"paymentType"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"paymentStatus"`
	ProofURL        *string    `json:"proofUrl,omitempty"`
	VerifiedBy      *int64     `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:              p.ID,
		RentalID:        p.RentalID,
		UserID:          p.UserID,
		ExtensionID:     p.ExtensionID,
		Type:            string(p.Type),
		Amount:          p.Amount,
		Status:          string(p.Status),
		ProofURL:        p.ProofURL,
		VerifiedBy:      p.VerifiedBy,
		VerifiedAt:      p.VerifiedAt,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
	}

	for _, p := range payments {
		if r := FromDomainPayment(p); r != nil {
			resp.Payments = append(resp.Payments, *r)
		}
	}

	return resp
}
