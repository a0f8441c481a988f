package reject_payment

import (
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
)

// RejectPaymentRequest HTTP request model
type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RejectPaymentRequest) ToServiceRequest(adminID int64) *models.RejectPaymentRequest {
	return &models.RejectPaymentRequest{
		AdminID: adminID,
		Reason:  r.Reason,
	}
}
