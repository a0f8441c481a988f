package get_extension

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
)

type ExtensionService interface {
	GetExtension(ctx context.Context, id int64) (*models.ExtensionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
