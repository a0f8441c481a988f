package approve_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	approveExtension "github.com/m04kA/SMC-RentalService/internal/usecase/approve_extension"
)

const (
	msgInvalidExtensionID = "некорректный ID продления"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "продление не найдено"
	msgRentalUpdateFailed = "не удалось обновить дату окончания аренды, одобрение отменено"
)

type Handler struct {
	useCase ApproveExtensionUseCase
	logger  Logger
}

func NewHandler(useCase ApproveExtensionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/extensions/{extensionId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	extensionID, err := handlers.PathID(r, "extensionId")
	if err != nil {
		h.logger.Warn("PATCH /admin/extensions/{id}/approve - Invalid extension ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExtensionID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/extensions/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveExtension.Request{
		ExtensionID: extensionID,
		AdminID:     adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveExtension.ErrExtensionNotFound):
			h.logger.Warn("PATCH /admin/extensions/{id}/approve - Extension not found: extension_id=%d", extensionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveExtension.ErrExtensionNotPending):
			// В сообщении фактический статус продления
			h.logger.Warn("PATCH /admin/extensions/{id}/approve - Not pending: extension_id=%d: %v", extensionID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, approveExtension.ErrCameraUnavailable):
			// Причина с периодом и конфликтующими арендами отдаётся как есть
			h.logger.Warn("PATCH /admin/extensions/{id}/approve - Camera unavailable: extension_id=%d: %v", extensionID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, approveExtension.ErrRentalUpdateFailed):
			h.logger.Error("PATCH /admin/extensions/{id}/approve - Rental update failed: extension_id=%d, error=%v",
				extensionID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgRentalUpdateFailed)

		case errors.Is(err, approveExtension.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidExtensionID)

		default:
			h.logger.Error("PATCH /admin/extensions/{id}/approve - Failed to approve: extension_id=%d, error=%v",
				extensionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/extensions/{id}/approve - Extension approved: extension_id=%d, rental_id=%d, admin_id=%d",
		extensionID, result.RentalID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
