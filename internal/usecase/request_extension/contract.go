package request_extension

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	LockCamera(ctx context.Context, cameraID int64) error
}

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	Create(ctx context.Context, ext *domain.Extension) (*domain.Extension, error)
}

// AvailabilityChecker проверка свободного окна камеры
type AvailabilityChecker interface {
	CheckRental(ctx context.Context, rental *domain.Rental, newEnd types.Date) (*check_availability.Response, error)
}

// PaymentService создание платежа-компаньона
type PaymentService interface {
	CreateExtensionPayment(ctx context.Context, req *paymentModels.CreateExtensionPaymentRequest) (*domain.Payment, error)
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
