package check_extension_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

const (
	msgInvalidRentalID  = "некорректный ID аренды"
	msgInvalidEndDate   = "некорректная дата окончания, ожидается YYYY-MM-DD"
	msgRentalNotFound   = "аренда не найдена"
	msgEndDateNotAfter  = "новая дата окончания должна быть позже текущей"
	msgInvalidArguments = "некорректные параметры запроса"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "аренда принадлежит другому пользователю"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rentals/{rentalId}/extension-availability?newEndDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rentalID, err := handlers.PathID(r, "rentalId")
	if err != nil {
		h.logger.Warn("GET /rentals/{id}/extension-availability - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rentals/{id}/extension-availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	newEndDate, err := handlers.QueryDate(r, "newEndDate")
	if err != nil || newEndDate == nil {
		h.logger.Warn("GET /rentals/{id}/extension-availability - Invalid newEndDate: rental_id=%d", rentalID)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		RentalID:   rentalID,
		NewEndDate: *newEndDate,
		UserID:     userID,
		IsAdmin:    middleware.IsAdmin(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrRentalNotFound):
			h.logger.Warn("GET /rentals/{id}/extension-availability - Rental not found: rental_id=%d", rentalID)
			handlers.RespondNotFound(w, msgRentalNotFound)

		case errors.Is(err, checkAvailability.ErrAccessDenied):
			h.logger.Warn("GET /rentals/{id}/extension-availability - Not owner: rental_id=%d, user_id=%d", rentalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkAvailability.ErrEndDateNotAfterCurrent):
			h.logger.Warn("GET /rentals/{id}/extension-availability - End date not after current: rental_id=%d", rentalID)
			handlers.RespondBadRequest(w, msgEndDateNotAfter)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidArguments)

		default:
			h.logger.Error("GET /rentals/{id}/extension-availability - Failed: rental_id=%d, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Занятая камера это не ошибка запроса, а ответ isAvailable=false с причиной
	h.logger.Info("GET /rentals/{id}/extension-availability - rental_id=%d, new_end=%s, available=%t",
		rentalID, newEndDate, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, result)
}
