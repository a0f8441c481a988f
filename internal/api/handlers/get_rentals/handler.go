package get_rentals

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals"
)

const (
	msgInvalidQuery  = "некорректные параметры запроса"
	msgInvalidFilter = "некорректный фильтр: проверьте статусы и период"
)

type Handler struct {
	service RentalService
	logger  Logger
}

func NewHandler(service RentalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/rentals?from=&to=&status=&shipping=&cameraId=&userId=
// Календарь аренд для админки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/rentals - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetRentals(r.Context(), req)
	if err != nil {
		if errors.Is(err, rentals.ErrInvalidInput) {
			h.logger.Warn("GET /admin/rentals - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /admin/rentals - Failed to get rentals: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/rentals - Rentals retrieved: count=%d", len(result.Rentals))
	handlers.RespondJSON(w, http.StatusOK, result.Rentals)
}
