package create_admin_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	createAdminExtension "github.com/m04kA/SMC-RentalService/internal/usecase/create_admin_extension"
)

const (
	msgInvalidRentalID    = "некорректный ID аренды"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProofTooLarge      = "файл чека слишком большой"
	msgRentalNotFound     = "аренда не найдена"
	msgEndDateNotAfter    = "новая дата окончания должна быть позже текущей"
	msgInvalidProof       = "некорректный файл чека, допустимы JPEG, PNG, WebP и PDF"
	msgUploadFailed       = "не удалось загрузить чек, продление не создано"
	msgPendingExists      = "по аренде уже есть запрос на продление, ожидающий решения"
	msgPaymentFailed      = "не удалось создать платёж за продление, продление не создано"
)

type Handler struct {
	useCase      CreateAdminExtensionUseCase
	maxProofSize int64
	logger       Logger
}

func NewHandler(useCase CreateAdminExtensionUseCase, maxProofSize int64, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		maxProofSize: maxProofSize,
		logger:       logger,
	}
}

// Handle POST /api/v1/admin/rentals/{rentalId}/extensions
// multipart/form-data (newEndDate, adminNotes, paymentProof) или JSON без чека
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("POST /admin/rentals/{id}/extensions - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/rentals/{id}/extensions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var useCaseReq *createAdminExtension.Request
	if handlers.IsMultipart(r) {
		useCaseReq, err = fromMultipart(r, rentalID, adminID, h.maxProofSize)
	} else {
		var req CreateAdminExtensionRequest
		if err = handlers.DecodeJSON(r, &req); err == nil {
			useCaseReq, err = req.ToUseCaseRequest(rentalID, adminID)
		}
	}
	if err != nil {
		h.logger.Warn("POST /admin/rentals/{id}/extensions - Invalid request: rental_id=%d: %v", rentalID, err)
		if errors.Is(err, filestorage.ErrFileTooLarge) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgProofTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAdminExtension.ErrRentalNotFound):
			h.logger.Warn("POST /admin/rentals/{id}/extensions - Rental not found: rental_id=%d", rentalID)
			handlers.RespondNotFound(w, msgRentalNotFound)

		case errors.Is(err, createAdminExtension.ErrNotEligible):
			h.logger.Warn("POST /admin/rentals/{id}/extensions - Not eligible: rental_id=%d: %v", rentalID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, createAdminExtension.ErrCameraUnavailable):
			h.logger.Warn("POST /admin/rentals/{id}/extensions - Camera unavailable: rental_id=%d: %v", rentalID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, createAdminExtension.ErrEndDateNotAfterCurrent):
			handlers.RespondBadRequest(w, msgEndDateNotAfter)

		case errors.Is(err, createAdminExtension.ErrInvalidProof):
			h.logger.Warn("POST /admin/rentals/{id}/extensions - Invalid proof: rental_id=%d: %v", rentalID, err)
			handlers.RespondBadRequest(w, msgInvalidProof)

		case errors.Is(err, createAdminExtension.ErrProofUploadFailed):
			h.logger.Error("POST /admin/rentals/{id}/extensions - Proof upload failed: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUploadFailed)

		case errors.Is(err, createAdminExtension.ErrPendingExtensionExists):
			handlers.RespondConflict(w, msgPendingExists)

		case errors.Is(err, createAdminExtension.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createAdminExtension.ErrPaymentFailed):
			h.logger.Error("POST /admin/rentals/{id}/extensions - Payment failed: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentFailed)

		default:
			h.logger.Error("POST /admin/rentals/{id}/extensions - Failed to create extension: rental_id=%d, error=%v",
				rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rentals/{id}/extensions - Extension created: extension_id=%d, rental_id=%d, admin_id=%d",
		result.ExtensionID, rentalID, adminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
