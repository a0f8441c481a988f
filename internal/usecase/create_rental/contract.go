package create_rental

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// RentalRepository интерфейс репозитория аренд
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	LockCamera(ctx context.Context, cameraID int64) error
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
	GetByID(ctx context.Context, id int64) (*domain.Camera, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация событий после записи
type Publisher interface {
	Publish(ctx context.Context, events ...realtime.Event)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
