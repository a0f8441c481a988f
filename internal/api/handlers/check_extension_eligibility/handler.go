package check_extension_eligibility

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	checkEligibility "github.com/m04kA/SMC-RentalService/internal/usecase/check_eligibility"
)

const (
	msgInvalidRentalID = "некорректный ID аренды"
	msgRentalNotFound  = "аренда не найдена"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "аренда принадлежит другому пользователю"
)

type Handler struct {
	useCase CheckEligibilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckEligibilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rentals/{rentalId}/extension-eligibility
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("GET /rentals/{id}/extension-eligibility - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rentals/{id}/extension-eligibility - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkEligibility.Request{
		RentalID: rentalID,
		UserID:   userID,
		IsAdmin:  middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkEligibility.ErrRentalNotFound):
			h.logger.Warn("GET /rentals/{id}/extension-eligibility - Rental not found: rental_id=%d", rentalID)
			handlers.RespondNotFound(w, msgRentalNotFound)

		case errors.Is(err, checkEligibility.ErrAccessDenied):
			h.logger.Warn("GET /rentals/{id}/extension-eligibility - Not owner: rental_id=%d, user_id=%d", rentalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkEligibility.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRentalID)

		default:
			h.logger.Error("GET /rentals/{id}/extension-eligibility - Failed: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rentals/{id}/extension-eligibility - rental_id=%d, eligible=%t", rentalID, result.IsEligible)
	handlers.RespondJSON(w, http.StatusOK, result)
}
