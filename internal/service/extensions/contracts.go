package extensions

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error)
	GetWithRental(ctx context.Context, filter domain.ExtensionsFilter) ([]*domain.ExtensionWithRental, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByExtensionID(ctx context.Context, extensionID int64) (*domain.Payment, error)
	GetByExtensionIDs(ctx context.Context, extensionIDs []int64) ([]*domain.Payment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
