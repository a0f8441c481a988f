package payments

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByExtensionID(ctx context.Context, extensionID int64) (*domain.Payment, error)
	GetByRentalID(ctx context.Context, rentalID int64) ([]*domain.Payment, error)
	AttachProof(ctx context.Context, id int64, path, url string) error
	Verify(ctx context.Context, id int64, adminID int64) error
	Reject(ctx context.Context, id int64, adminID int64, reason string) error
}

// ExtensionRepository интерфейс репозитория продлений
type ExtensionRepository interface {
	GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error)
}

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
}

// FileStorage интерфейс хранилища чеков
type FileStorage interface {
	Upload(ctx context.Context, rentalID int64, file filestorage.File) (*filestorage.StoredFile, error)
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
