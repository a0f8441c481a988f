package confirm_rental

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	LockCamera(ctx context.Context, cameraID int64) error
	Confirm(ctx context.Context, id int64) error
	TransferAndConfirm(ctx context.Context, id int64, cameraID int64) error
	Reject(ctx context.Context, ids []int64, reason string) error
}

// Planner строит варианты разрешения конфликтов
type Planner interface {
	BuildPlan(ctx context.Context, rental *domain.Rental) (domain.ResolutionOptions, error)
}

// Notifier уведомления арендаторов
type Notifier interface {
	RentalConfirmed(ctx context.Context, r *domain.Rental) error
	RentalRejected(ctx context.Context, r *domain.Rental, reason string) error
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
