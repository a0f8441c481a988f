package update_rental_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
)

const (
	msgInvalidRentalID      = "некорректный ID аренды"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidStatus        = "некорректный статус аренды"
	msgNotFound             = "аренда не найдена"
	msgInvalidTransition    = "недопустимый переход статуса аренды"
	msgConfirmationRequired = "аренду в статусе pending подтверждают через план подтверждения"
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

// Handle PATCH /api/v1/admin/rentals/{rentalId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("PATCH /admin/rentals/{id}/status - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/rentals/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AdminID = adminID

	result, err := h.service.UpdateStatus(r.Context(), rentalID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrInvalidStatus), errors.Is(err, rentals.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, rentals.ErrRentalNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rentals.ErrConfirmationRequired):
			handlers.RespondConflict(w, msgConfirmationRequired)

		case errors.Is(err, rentals.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/rentals/{id}/status - %v: rental_id=%d", err, rentalID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/rentals/{id}/status - Failed to update: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/rentals/{id}/status - Status updated: rental_id=%d, status=%s, admin_id=%d",
		rentalID, result.RentalStatus, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
