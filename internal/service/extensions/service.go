package extensions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalService/internal/service/extensions/models"
)

// Service сервис чтения истории продлений
type Service struct {
	extensionRepo ExtensionRepository
	paymentRepo   PaymentRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса продлений
func NewService(extensionRepo ExtensionRepository, paymentRepo PaymentRepository, logger Logger) *Service {
	return &Service{
		extensionRepo: extensionRepo,
		paymentRepo:   paymentRepo,
		logger:        logger,
	}
}

// GetExtensionHistory получает продления пользователя с данными аренды и платежами
func (s *Service) GetExtensionHistory(ctx context.Context, userID int64) (*models.ExtensionListResponse, error) {
	s.logger.Info("GetExtensionHistory: fetching extensions for user=%d", userID)

	resp, err := s.list(ctx, "GetExtensionHistory", domain.ExtensionsFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetExtensionHistory: fetched %d extensions for user=%d", len(resp.Extensions), userID)
	return resp, nil
}

// GetAllExtensions получает продления для админки с фильтрацией по статусу
func (s *Service) GetAllExtensions(ctx context.Context, req *models.GetAllExtensionsRequest) (*models.ExtensionListResponse, error) {
	s.logger.Info("GetAllExtensions: status=%v, user=%v, rental=%v", req.Status, req.UserID, req.RentalID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAllExtensions: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp, err := s.list(ctx, "GetAllExtensions", filter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetAllExtensions: fetched %d extensions", len(resp.Extensions))
	return resp, nil
}

// GetExtension получает одно продление с платежом
func (s *Service) GetExtension(ctx context.Context, id int64) (*models.ExtensionResponse, error) {
	ext, err := s.extensionRepo.GetWithRentalByID(ctx, id)
	if err != nil {
		if errors.Is(err, extensionRepo.ErrExtensionNotFound) {
			s.logger.Warn("GetExtension: extension id=%d not found", id)
			return nil, ErrExtensionNotFound
		}
		s.logger.Error("GetExtension: repository error for extension id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetExtension - repository error: %v", ErrInternal, err)
	}

	payment, err := s.paymentRepo.GetByExtensionID(ctx, id)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("GetExtension: failed to get payment for extension id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetExtension - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExtension(ext, payment), nil
}

// list два запроса: продления с арендой, затем платежи по их id
func (s *Service) list(ctx context.Context, method string, filter domain.ExtensionsFilter) (*models.ExtensionListResponse, error) {
	list, err := s.extensionRepo.GetWithRental(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	ids := make([]int64, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}

	payments, err := s.paymentRepo.GetByExtensionIDs(ctx, ids)
	if err != nil {
		s.logger.Error("%s: failed to get payments: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return models.FromDomainExtensionList(list, payments), nil
}
