package get_confirmation_plan

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	FindOverlapping(
		ctx context.Context,
		cameraID int64,
		from, to types.Date,
		statuses []domain.RentalStatus,
		excludeRentalID int64,
	) ([]*domain.Rental, error)
}

// CameraRepository интерфейс репозитория камер
type CameraRepository interface {
	FindAvailableUnits(
		ctx context.Context,
		name string,
		excludeCameraID int64,
		from, to types.Date,
		statuses []domain.RentalStatus,
		excludeRentalID int64,
	) ([]*domain.Camera, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
