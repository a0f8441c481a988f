package rentals

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.RentalStatus) ([]*domain.Rental, error)
	GetWithFilter(ctx context.Context, filter domain.RentalsFilter) ([]*domain.Rental, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RentalStatus) error
	UpdateShippingStatus(ctx context.Context, id int64, status domain.ShippingStatus) error
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
