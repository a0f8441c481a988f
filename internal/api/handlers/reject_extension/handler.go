package reject_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	rejectExtension "github.com/m04kA/SMC-RentalService/internal/usecase/reject_extension"
)

const (
	msgInvalidExtensionID = "некорректный ID продления"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "продление не найдено"
)

type Handler struct {
	useCase RejectExtensionUseCase
	logger  Logger
}

func NewHandler(useCase RejectExtensionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/extensions/{extensionId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	extensionID, err := handlers.PathID(r, "extensionId")
	if err != nil {
		h.logger.Warn("PATCH /admin/extensions/{id}/reject - Invalid extension ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExtensionID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/extensions/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RejectExtensionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /admin/extensions/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectExtension.Request{
		ExtensionID: extensionID,
		AdminID:     adminID,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectExtension.ErrExtensionNotFound):
			h.logger.Warn("PATCH /admin/extensions/{id}/reject - Extension not found: extension_id=%d", extensionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectExtension.ErrExtensionNotPending):
			h.logger.Warn("PATCH /admin/extensions/{id}/reject - Not pending: extension_id=%d: %v", extensionID, err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, rejectExtension.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/extensions/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /admin/extensions/{id}/reject - Failed to reject: extension_id=%d, error=%v",
				extensionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/extensions/{id}/reject - Extension rejected: extension_id=%d, admin_id=%d",
		extensionID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
