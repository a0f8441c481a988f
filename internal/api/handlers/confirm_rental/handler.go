package confirm_rental

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	confirmRental "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_rental"
)

const (
	msgInvalidRentalID    = "некорректный ID аренды"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "аренда не найдена"
	msgNotPending         = "аренда уже не ожидает подтверждения"
	msgActionNotAvailable = "выбранное действие недоступно для этой аренды"
	msgUnitNotAvailable   = "выбранная камера занята на эти даты"
	msgConflictsChanged   = "конфликтующие аренды изменились, обновите план подтверждения"
)

type Handler struct {
	useCase ConfirmRentalUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmRentalUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/rentals/{rentalId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("POST /admin/rentals/{id}/confirm - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ConfirmRentalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/rentals/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(rentalID, adminID))
	if err != nil {
		switch {
		case errors.Is(err, confirmRental.ErrConflictsChanged):
			h.logger.Warn("POST /admin/rentals/{id}/confirm - Conflicts changed: rental_id=%d: %v", rentalID, err)
			handlers.RespondConflict(w, msgConflictsChanged)

		case errors.Is(err, confirmRental.ErrRentalNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmRental.ErrRentalNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, confirmRental.ErrActionNotAvailable):
			handlers.RespondConflict(w, msgActionNotAvailable)

		case errors.Is(err, confirmRental.ErrUnitNotAvailable):
			handlers.RespondConflict(w, msgUnitNotAvailable)

		case errors.Is(err, confirmRental.ErrInvalidInput):
			h.logger.Warn("POST /admin/rentals/{id}/confirm - Validation error: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/rentals/{id}/confirm - Failed to confirm: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/rentals/{id}/confirm - Rental resolved: rental_id=%d, action=%s, status=%s, rejected=%v",
		rentalID, result.Action, result.RentalStatus, result.RejectedRentalIDs)
	handlers.RespondJSON(w, http.StatusOK, result)
}
