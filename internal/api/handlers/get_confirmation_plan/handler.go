package get_confirmation_plan

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	getConfirmationPlan "github.com/m04kA/SMC-RentalService/internal/usecase/get_confirmation_plan"
)

const (
	msgInvalidRentalID = "некорректный ID аренды"
	msgNotFound        = "аренда не найдена"
	msgNotPending      = "аренда уже не ожидает подтверждения"
)

type Handler struct {
	useCase GetConfirmationPlanUseCase
	logger  Logger
}

func NewHandler(useCase GetConfirmationPlanUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/rentals/{rentalId}/confirmation-plan
// Конфликты, свободные юниты и доступные действия для pending аренды
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("GET /admin/rentals/{id}/confirmation-plan - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), rentalID)
	if err != nil {
		switch {
		case errors.Is(err, getConfirmationPlan.ErrRentalNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getConfirmationPlan.ErrRentalNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, getConfirmationPlan.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRentalID)

		default:
			h.logger.Error("GET /admin/rentals/{id}/confirmation-plan - Failed to build plan: rental_id=%d, error=%v",
				rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/rentals/{id}/confirmation-plan - Plan built: rental_id=%d, conflicts=%t, default=%s",
		rentalID, result.HasConflicts, result.DefaultAction)
	handlers.RespondJSON(w, http.StatusOK, result)
}
