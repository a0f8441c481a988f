package reject_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgReasonRequired     = "укажите причину отклонения"
	msgNotFound           = "платёж не найден"
	msgPaymentFinal       = "платёж уже подтверждён или отклонён"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/payments/{paymentId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/reject - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RejectPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reject(r.Context(), paymentID, req.ToServiceRequest(adminID))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReasonRequired):
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, payments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /admin/payments/{id}/reject - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrPaymentFinal):
			h.logger.Warn("PATCH /admin/payments/{id}/reject - Payment is final: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgPaymentFinal)

		default:
			h.logger.Error("PATCH /admin/payments/{id}/reject - Failed to reject: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/payments/{id}/reject - Payment rejected: payment_id=%d, admin_id=%d", paymentID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
