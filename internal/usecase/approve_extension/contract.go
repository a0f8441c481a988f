package approve_extension

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error)
	Approve(ctx context.Context, id int64, adminID int64) error
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	LockCamera(ctx context.Context, cameraID int64) error
	FindOverlapping(
		ctx context.Context,
		cameraID int64,
		from, to types.Date,
		statuses []domain.RentalStatus,
		excludeRentalID int64,
	) ([]*domain.Rental, error)
	UpdateEndDate(ctx context.Context, id int64, endDate types.Date, additionalPrice float64) error
}

// Notifier уведомление арендатора
type Notifier interface {
	ExtensionApproved(ctx context.Context, ext *domain.ExtensionWithRental) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация событий после коммита
type Publisher interface {
	Publish(ctx context.Context, events ...realtime.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
