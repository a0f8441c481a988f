package create_rental

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createRental "github.com/m04kA/SMC-RentalService/internal/usecase/create_rental"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректная дата, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCameraNotFound     = "камера не найдена"
	msgCameraWithdrawn    = "камера снята с аренды"
	msgInvalidDates       = "некорректный период аренды"
)

type Handler struct {
	useCase CreateRentalUseCase
	logger  Logger
}

func NewHandler(useCase CreateRentalUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rentals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rentals - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRentalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rentals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /rentals - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRental.ErrCameraNotFound):
			h.logger.Warn("POST /rentals - Camera not found: camera_id=%d", req.CameraID)
			handlers.RespondNotFound(w, msgCameraNotFound)

		case errors.Is(err, createRental.ErrCameraWithdrawn):
			h.logger.Warn("POST /rentals - Camera withdrawn: camera_id=%d", req.CameraID)
			handlers.RespondConflict(w, msgCameraWithdrawn)

		case errors.Is(err, createRental.ErrInvalidDates):
			h.logger.Warn("POST /rentals - Invalid dates: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createRental.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /rentals - Failed to create rental: user_id=%d, camera_id=%d, error=%v",
				userID, req.CameraID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rentals - Rental created: rental_id=%d, camera_id=%d, user_id=%d",
		result.RentalID, result.CameraID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
