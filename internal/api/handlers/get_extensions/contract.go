package get_extensions

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
)

type ExtensionService interface {
	GetAllExtensions(ctx context.Context, req *models.GetAllExtensionsRequest) (*models.ExtensionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
