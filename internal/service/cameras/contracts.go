package cameras

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CameraRepository интерфейс репозитория камер
type CameraRepository interface {
	List(ctx context.Context) ([]*domain.Camera, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
