package get_extensions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/extensions"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/admin/extensions
// Query params: status, userId, rentalId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/extensions - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetAllExtensions(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, extensions.ErrInvalidInput):
			h.logger.Warn("GET /admin/extensions - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/extensions - Failed to get extensions: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/extensions - Extensions retrieved: count=%d", len(result.Extensions))
	handlers.RespondJSON(w, http.StatusOK, result.Extensions)
}
