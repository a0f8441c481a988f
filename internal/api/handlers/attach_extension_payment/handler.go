package attach_extension_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/internal/service/payments"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
)

const (
	proofField = "paymentProof"

	msgInvalidExtensionID = "некорректный ID продления"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProofTooLarge      = "файл чека слишком большой"
	msgNotFound           = "продление не найдено"
	msgForbidden          = "доступ запрещен"
	msgPaymentFinal       = "платёж уже подтверждён или отклонён"
	msgProofAttached      = "чек уже приложен к платежу"
	msgExtensionRejected  = "продление отклонено, оплата не требуется"
	msgInvalidProof       = "некорректный файл чека, допустимы JPEG, PNG, WebP и PDF"
	msgStorageUnavailable = "хранилище чеков недоступно, попробуйте позже"
)

type Handler struct {
	service      PaymentService
	maxProofSize int64
	logger       Logger
}

func NewHandler(service PaymentService, maxProofSize int64, logger Logger) *Handler {
	return &Handler{
		service:      service,
		maxProofSize: maxProofSize,
		logger:       logger,
	}
}

// Handle POST /api/v1/extensions/{extensionId}/payment
// Без файла создаёт недостающий платёж, с файлом paymentProof прикладывает чек.
// Повторный вызов безопасен.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	extensionID, err := handlers.PathID(r, "extensionId")
	if err != nil {
		h.logger.Warn("POST /extensions/{id}/payment - Invalid extension ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExtensionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /extensions/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var proof *filestorage.File
	if handlers.IsMultipart(r) {
		proof, err = handlers.ReadFormFile(r, proofField, h.maxProofSize)
		if err != nil {
			h.logger.Warn("POST /extensions/{id}/payment - Invalid form: extension_id=%d: %v", extensionID, err)
			if errors.Is(err, filestorage.ErrFileTooLarge) {
				handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgProofTooLarge)
				return
			}
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.AttachExtensionPayment(r.Context(), &models.AttachPaymentRequest{
		ExtensionID: extensionID,
		ActorID:     userID,
		IsAdmin:     middleware.IsAdmin(r.Context()),
		Proof:       proof,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrExtensionNotFound):
			h.logger.Warn("POST /extensions/{id}/payment - Extension not found: extension_id=%d", extensionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /extensions/{id}/payment - Access denied: extension_id=%d, user_id=%d", extensionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrPaymentFinal):
			handlers.RespondConflict(w, msgPaymentFinal)

		case errors.Is(err, payments.ErrExtensionRejected):
			handlers.RespondConflict(w, msgExtensionRejected)

		case errors.Is(err, payments.ErrProofAlreadyAttached):
			handlers.RespondConflict(w, msgProofAttached)

		case errors.Is(err, payments.ErrInvalidProof):
			handlers.RespondBadRequest(w, msgInvalidProof)

		case errors.Is(err, payments.ErrStorageUnavailable):
			h.logger.Error("POST /extensions/{id}/payment - Storage unavailable: extension_id=%d, error=%v", extensionID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)

		default:
			h.logger.Error("POST /extensions/{id}/payment - Failed to attach payment: extension_id=%d, error=%v",
				extensionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /extensions/{id}/payment - Payment ready: extension_id=%d, payment_id=%d, status=%s",
		extensionID, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
