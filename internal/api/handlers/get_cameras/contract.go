package get_cameras

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/cameras/models"
)

type CameraService interface {
	GetCameras(ctx context.Context, onlyAvailable bool) (*models.CameraListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
