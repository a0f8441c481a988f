package reject_extension

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
)

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error)
	Reject(ctx context.Context, id int64, adminID int64, notes *string) error
}

// Notifier уведомление арендатора
type Notifier interface {
	ExtensionRejected(ctx context.Context, ext *domain.ExtensionWithRental, notes *string) error
}

// Publisher публикация событий после записи
type Publisher interface {
	Publish(ctx context.Context, events ...realtime.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
