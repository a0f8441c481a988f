package create_rental

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	cameraRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/camera"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase создание заявки на аренду
type UseCase struct {
	rentalRepo   RentalRepository
	cameraRepo   CameraRepository
	txManager    TransactionManager
	publisher    Publisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rentalRepo RentalRepository,
	cameraRepo CameraRepository,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		rentalRepo:   rentalRepo,
		cameraRepo:   cameraRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает аренду в статусе pending.
// Цена фиксируется по текущему тарифу юнита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRental: user=%d, camera=%d, %s..%s", req.UserID, req.CameraID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRental: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем период относительно сегодняшней даты (UTC)
	today := types.DateFromTime(uc.timeProvider.Now().UTC())
	if err := validateDates(req.StartDate, req.EndDate, today); err != nil {
		uc.logger.Warn("CreateRental: %v", err)
		return nil, err
	}

	// 3. Получаем юнит
	camera, err := uc.cameraRepo.GetByID(ctx, req.CameraID)
	if err != nil {
		if errors.Is(err, cameraRepo.ErrCameraNotFound) {
			uc.logger.Warn("CreateRental: camera id=%d not found", req.CameraID)
			return nil, ErrCameraNotFound
		}
		uc.logger.Error("CreateRental: failed to get camera id=%d: %v", req.CameraID, err)
		return nil, fmt.Errorf("%w: failed to get camera: %v", ErrInternal, err)
	}

	if !camera.IsAvailable {
		uc.logger.Warn("CreateRental: camera id=%d is withdrawn", camera.ID)
		return nil, ErrCameraWithdrawn
	}

	var (
		created     *domain.Rental
		overlapping int
	)

	// 4. Создаем аренду под блокировкой камеры, чтобы план подтверждения видел её сразу
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.rentalRepo.LockCamera(txCtx, camera.ID); err != nil {
			uc.logger.Error("CreateRental: failed to lock camera=%d: %v", camera.ID, err)
			return fmt.Errorf("%w: failed to lock camera: %v", ErrInternal, err)
		}

		others, err := uc.rentalRepo.FindOverlapping(txCtx, camera.ID, req.StartDate, req.EndDate, domain.ConflictStatuses, 0)
		if err != nil {
			uc.logger.Error("CreateRental: failed to find overlapping rentals: %v", err)
			return fmt.Errorf("%w: failed to find overlapping rentals: %v", ErrInternal, err)
		}
		overlapping = len(others)

		rental := &domain.Rental{
			UserID:         req.UserID,
			CameraID:       camera.ID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			RentalStatus:   domain.RentalPending,
			ShippingStatus: domain.ShippingPending,
			PricePerDay:    camera.PricePerDay,
			CameraName:     camera.Name,
			CameraSerial:   camera.SerialNumber,
		}
		rental.TotalPrice = float64(rental.Days()) * camera.PricePerDay

		created, err = uc.rentalRepo.Create(txCtx, rental)
		if err != nil {
			uc.logger.Error("CreateRental: failed to create rental: %v", err)
			return fmt.Errorf("%w: failed to create rental: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, realtime.RentalCreated(created.ID))

	if overlapping > 0 {
		uc.logger.Warn("CreateRental: rental id=%d overlaps %d rentals on camera=%d", created.ID, overlapping, camera.ID)
	}
	uc.logger.Info("CreateRental: created rental id=%d, days=%d, total=%.2f", created.ID, created.Days(), created.TotalPrice)

	return &Response{
		RentalID:           created.ID,
		UserID:             created.UserID,
		CameraID:           created.CameraID,
		CameraName:         created.CameraName,
		CameraSerial:       created.CameraSerial,
		StartDate:          created.StartDate,
		EndDate:            created.EndDate,
		Days:               created.Days(),
		PricePerDay:        created.PricePerDay,
		TotalPrice:         created.TotalPrice,
		RentalStatus:       string(created.RentalStatus),
		CreatedAt:          created.CreatedAt,
		OverlappingRentals: overlapping,
	}, nil
}
