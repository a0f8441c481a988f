package request_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	requestExtension "github.com/m04kA/SMC-RentalService/internal/usecase/request_extension"
)

const (
	msgInvalidRentalID    = "некорректный ID аренды"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEndDate     = "некорректная дата окончания, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRentalNotFound     = "аренда не найдена"
	msgForbidden          = "аренда принадлежит другому пользователю"
	msgEndDateNotAfter    = "новая дата окончания должна быть позже текущей"
	msgPendingExists      = "по аренде уже есть запрос на продление, ожидающий решения"
	msgPaymentFailed      = "не удалось создать платёж за продление, продление не создано"
)

type Handler struct {
	useCase RequestExtensionUseCase
	logger  Logger
}

func NewHandler(useCase RequestExtensionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rentals/{rentalId}/extensions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("POST /rentals/{id}/extensions - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rentals/{id}/extensions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestExtensionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rentals/{id}/extensions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(rentalID, userID)
	if err != nil {
		h.logger.Warn("POST /rentals/{id}/extensions - Invalid newEndDate %q: %v", req.NewEndDate, err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestExtension.ErrRentalNotFound):
			h.logger.Warn("POST /rentals/{id}/extensions - Rental not found: rental_id=%d", rentalID)
			handlers.RespondNotFound(w, msgRentalNotFound)

		case errors.Is(err, requestExtension.ErrUnauthorized):
			h.logger.Warn("POST /rentals/{id}/extensions - Not owner: rental_id=%d, user_id=%d", rentalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestExtension.ErrEndDateNotAfterCurrent):
			h.logger.Warn("POST /rentals/{id}/extensions - End date not after current: rental_id=%d", rentalID)
			handlers.RespondBadRequest(w, msgEndDateNotAfter)

		case errors.Is(err, requestExtension.ErrCameraUnavailable):
			// Причина от проверки доступности отдаётся как есть
			h.logger.Warn("POST /rentals/{id}/extensions - Camera unavailable: rental_id=%d: %v", rentalID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, requestExtension.ErrPendingExtensionExists):
			h.logger.Warn("POST /rentals/{id}/extensions - Pending extension exists: rental_id=%d", rentalID)
			handlers.RespondConflict(w, msgPendingExists)

		case errors.Is(err, requestExtension.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, requestExtension.ErrPaymentFailed):
			h.logger.Error("POST /rentals/{id}/extensions - Payment failed: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentFailed)

		default:
			h.logger.Error("POST /rentals/{id}/extensions - Failed to request extension: rental_id=%d, error=%v",
				rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rentals/{id}/extensions - Extension requested: extension_id=%d, rental_id=%d, days=%d",
		result.ExtensionID, rentalID, result.ExtensionDays)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
