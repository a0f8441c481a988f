package get_extension

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/extensions"
)

const (
	msgInvalidExtensionID = "некорректный ID продления"
	msgNotFound           = "продление не найдено"
)

type Handler struct {
	service ExtensionService
	logger  Logger
}

func NewHandler(service ExtensionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/extensions/{extensionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	extensionID, err := handlers.PathID(r, "extensionId")
	if err != nil {
		h.logger.Warn("GET /admin/extensions/{id} - Invalid extension ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExtensionID)
		return
	}

	ext, err := h.service.GetExtension(r.Context(), extensionID)
	if err != nil {
		switch {
		case errors.Is(err, extensions.ErrExtensionNotFound):
			h.logger.Warn("GET /admin/extensions/{id} - Extension not found: extension_id=%d", extensionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/extensions/{id} - Failed to get extension: extension_id=%d, error=%v",
				extensionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/extensions/{id} - Extension retrieved: extension_id=%d", extensionID)
	handlers.RespondJSON(w, http.StatusOK, ext)
}
