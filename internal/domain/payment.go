package domain

import "time"

// PaymentType what the payment covers
type PaymentType string

const (
	PaymentTypeRental    PaymentType = "rental"
	PaymentTypeExtension PaymentType = "extension"
)

// PaymentStatus verification state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"   // no proof yet
	PaymentSubmitted PaymentStatus = "submitted" // proof uploaded, awaits admin
	PaymentVerified  PaymentStatus = "verified"
	PaymentRejected  PaymentStatus = "rejected"
)

// Payment payment record with its own verification lifecycle
type Payment struct {
	ID          int64
	RentalID    int64
	UserID      int64
	ExtensionID *int64
	Type        PaymentType
	Amount      float64
	Status      PaymentStatus

	ProofPath *string
	ProofURL  *string

	VerifiedBy      *int64
	VerifiedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinal returns true for verified and rejected payments
func (p *Payment) IsFinal() bool {
	return p.Status == PaymentVerified || p.Status == PaymentRejected
}

// HasProof returns true if a proof file was attached
func (p *Payment) HasProof() bool {
	return p.ProofPath != nil && *p.ProofPath != ""
}

// InitialPaymentStatus submitted when a proof is attached at creation, pending otherwise
func InitialPaymentStatus(hasProof bool) PaymentStatus {
	if hasProof {
		return PaymentSubmitted
	}
	return PaymentPending
}
