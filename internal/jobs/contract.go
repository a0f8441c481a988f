package jobs

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	GetApprovedOutOfSync(ctx context.Context, limit int) ([]*domain.Extension, error)
	GetWithoutPayment(ctx context.Context, limit int) ([]*domain.Extension, error)
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	LockCamera(ctx context.Context, cameraID int64) error
	UpdateEndDate(ctx context.Context, id int64, endDate types.Date, additionalPrice float64) error
}

// PaymentService интерфейс сервиса платежей
type PaymentService interface {
	EnsureExtensionPayment(ctx context.Context, extensionID int64) (*domain.Payment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher интерфейс публикации событий изменений
type Publisher interface {
	Publish(ctx context.Context, events ...realtime.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
