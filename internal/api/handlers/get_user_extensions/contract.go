package get_user_extensions

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
)

type ExtensionService interface {
	GetExtensionHistory(ctx context.Context, userID int64) (*models.ExtensionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
