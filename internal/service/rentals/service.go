package rentals

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
)

// Service сервис для работы с арендами
type Service struct {
	rentalRepo RentalRepository
	publisher  Publisher
	logger     Logger
}

// NewService создает новый экземпляр сервиса аренд
func NewService(rentalRepo RentalRepository, publisher Publisher, logger Logger) *Service {
	return &Service{
		rentalRepo: rentalRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// GetByID получает аренду по ID
// Пользователь видит только свою аренду, админ видит любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.RentalResponse, error) {
	s.logger.Info("GetByID: fetching rental id=%d for user=%d", id, userID)

	rental, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && rental.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to rental id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched rental id=%d", id)
	return models.FromDomainRental(rental), nil
}

// GetRental получает аренду без проверки прав (realtime, внутренние вызовы)
func (s *Service) GetRental(ctx context.Context, id int64) (*models.RentalResponse, error) {
	rental, err := s.get(ctx, "GetRental", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRental(rental), nil
}

// GetUserRentals получает историю аренд пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserRentals(ctx context.Context, req *models.GetUserRentalsRequest) (*models.RentalListResponse, error) {
	s.logger.Info("GetUserRentals: fetching rentals for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.RentalStatus
	if req.Status != nil {
		status, err := models.ToDomainRentalStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRentals: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	rentals, err := s.rentalRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserRentals: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRentals - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRentals: successfully fetched %d rentals for user=%d", len(rentals), req.UserID)
	return models.FromDomainRentalList(rentals), nil
}

// GetRentals получает аренды для календаря админки с фильтрацией
//
// Примеры использования:
// - Все аренды камеры: указать CameraID
// - Аренды за период: From и To (пересечение с периодом)
// - Ожидающие подтверждения: Status = "pending"
func (s *Service) GetRentals(ctx context.Context, req *models.GetRentalsRequest) (*models.RentalListResponse, error) {
	logMsg := "GetRentals: fetching rentals"
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From, req.To)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.CameraID != nil {
		logMsg += fmt.Sprintf(", camera=%d", *req.CameraID)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRentals: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rentals, err := s.rentalRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRentals: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRentals - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRentals: successfully fetched %d rentals", len(rentals))
	return models.FromDomainRentalList(rentals), nil
}

// UpdateStatus обновляет статус аренды по таблице переходов
// Подтверждение и отклонение pending аренды идут только через разрешение конфликтов
func (s *Service) UpdateStatus(ctx context.Context, rentalID int64, req *models.UpdateStatusRequest) (*models.RentalResponse, error) {
	s.logger.Info("UpdateStatus: updating rental id=%d to status=%s by admin=%d", rentalID, req.Status, req.AdminID)

	newStatus, err := models.ToDomainRentalStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	rental, err := s.get(ctx, "UpdateStatus", rentalID)
	if err != nil {
		return nil, err
	}

	if rental.IsPending() && (newStatus == domain.RentalConfirmed || newStatus == domain.RentalRejected) {
		s.logger.Warn("UpdateStatus: rental id=%d is pending, use confirmation flow", rentalID)
		return nil, ErrConfirmationRequired
	}

	if !rental.RentalStatus.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for rental id=%d",
			rental.RentalStatus, newStatus, rentalID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rental.RentalStatus, newStatus)
	}

	if err := s.rentalRepo.UpdateStatus(ctx, rentalID, newStatus); err != nil {
		return nil, s.mapUpdateError("UpdateStatus", rentalID, err)
	}

	return s.reloadAndPublish(ctx, "UpdateStatus", rentalID)
}

// UpdateShippingStatus обновляет статус доставки по таблице переходов
func (s *Service) UpdateShippingStatus(ctx context.Context, rentalID int64, req *models.UpdateShippingRequest) (*models.RentalResponse, error) {
	s.logger.Info("UpdateShippingStatus: updating rental id=%d to shipping=%s by admin=%d", rentalID, req.Status, req.AdminID)

	newStatus, err := models.ToDomainShippingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateShippingStatus: invalid shipping status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	rental, err := s.get(ctx, "UpdateShippingStatus", rentalID)
	if err != nil {
		return nil, err
	}

	if !rental.ShippingStatus.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateShippingStatus: transition %s -> %s is not allowed for rental id=%d",
			rental.ShippingStatus, newStatus, rentalID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rental.ShippingStatus, newStatus)
	}

	if err := s.rentalRepo.UpdateShippingStatus(ctx, rentalID, newStatus); err != nil {
		return nil, s.mapUpdateError("UpdateShippingStatus", rentalID, err)
	}

	return s.reloadAndPublish(ctx, "UpdateShippingStatus", rentalID)
}

func (s *Service) reloadAndPublish(ctx context.Context, method string, rentalID int64) (*models.RentalResponse, error) {
	rental, err := s.get(ctx, method, rentalID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.RentalUpdated(rentalID))
	s.logger.Info("%s: rental id=%d is now %s/%s", method, rentalID, rental.RentalStatus, rental.ShippingStatus)
	return models.FromDomainRental(rental), nil
}

func (s *Service) mapUpdateError(method string, rentalID int64, err error) error {
	if errors.Is(err, rentalRepo.ErrRentalNotFound) {
		s.logger.Warn("%s: rental id=%d not found during update", method, rentalID)
		return ErrRentalNotFound
	}
	s.logger.Error("%s: repository error for rental id=%d: %v", method, rentalID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func (s *Service) get(ctx context.Context, method string, id int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			s.logger.Warn("%s: rental id=%d not found", method, id)
			return nil, ErrRentalNotFound
		}
		s.logger.Error("%s: repository error for rental id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return rental, nil
}
