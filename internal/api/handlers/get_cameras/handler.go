package get_cameras

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const msgInvalidAvailable = "параметр available должен быть true или false"

type Handler struct {
	service CameraService
	logger  Logger
}

func NewHandler(service CameraService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/cameras?available=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := false
	if v := handlers.QueryString(r, "available"); v != nil {
		parsed, err := strconv.ParseBool(*v)
		if err != nil {
			h.logger.Warn("GET /cameras - Invalid available=%q", *v)
			handlers.RespondBadRequest(w, msgInvalidAvailable)
			return
		}
		onlyAvailable = parsed
	}

	result, err := h.service.GetCameras(r.Context(), onlyAvailable)
	if err != nil {
		h.logger.Error("GET /cameras - Failed to get cameras: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
