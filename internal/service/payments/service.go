package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

// Service сервис платежей: связка продление-платёж, чеки, проверка админом
type Service struct {
	paymentRepo   PaymentRepository
	extensionRepo ExtensionRepository
	rentalRepo    RentalRepository
	storage       FileStorage
	publisher     Publisher
	logger        Logger
}

// NewService создает новый экземпляр сервиса платежей.
// storage может быть nil, если хранилище чеков выключено.
func NewService(
	paymentRepo PaymentRepository,
	extensionRepo ExtensionRepository,
	rentalRepo RentalRepository,
	storage FileStorage,
	publisher Publisher,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:   paymentRepo,
		extensionRepo: extensionRepo,
		rentalRepo:    rentalRepo,
		storage:       storage,
		publisher:     publisher,
		logger:        logger,
	}
}

// UploadProof загружает чек в хранилище. Строк в БД не пишет.
func (s *Service) UploadProof(ctx context.Context, rentalID int64, file filestorage.File) (*filestorage.StoredFile, error) {
	if s.storage == nil {
		s.logger.Warn("UploadProof: storage is disabled, rental id=%d", rentalID)
		return nil, ErrStorageUnavailable
	}

	stored, err := s.storage.Upload(ctx, rentalID, file)
	if err != nil {
		switch {
		case errors.Is(err, filestorage.ErrEmptyFile),
			errors.Is(err, filestorage.ErrFileTooLarge),
			errors.Is(err, filestorage.ErrUnsupportedType):
			s.logger.Warn("UploadProof: invalid proof for rental id=%d: %v", rentalID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidProof, err)
		default:
			s.logger.Error("UploadProof: upload failed for rental id=%d: %v", rentalID, err)
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	s.logger.Info("UploadProof: stored proof %s for rental id=%d", stored.Path, rentalID)
	return stored, nil
}

// CreateExtensionPayment создает платёж-компаньон продления.
// Идемпотентен по extension_id: существующий платёж возвращается без изменений.
// Может выполняться внутри транзакции вызывающего, события не публикует.
func (s *Service) CreateExtensionPayment(ctx context.Context, req *models.CreateExtensionPaymentRequest) (*domain.Payment, error) {
	s.logger.Info("CreateExtensionPayment: extension=%d, rental=%d, amount=%.2f, proof=%t",
		req.ExtensionID, req.RentalID, req.Amount, req.Proof != nil)

	existing, err := s.paymentRepo.GetByExtensionID(ctx, req.ExtensionID)
	if err == nil {
		s.logger.Info("CreateExtensionPayment: payment id=%d already exists for extension=%d", existing.ID, req.ExtensionID)
		return existing, nil
	}
	if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("CreateExtensionPayment: repository error for extension=%d: %v", req.ExtensionID, err)
		return nil, fmt.Errorf("%w: CreateExtensionPayment - repository error: %v", ErrInternal, err)
	}

	payment := &domain.Payment{
		RentalID:    req.RentalID,
		UserID:      req.UserID,
		ExtensionID: ptr.Ptr(req.ExtensionID),
		Type:        domain.PaymentTypeExtension,
		Amount:      req.Amount,
		Status:      domain.InitialPaymentStatus(req.Proof != nil),
	}
	if req.Proof != nil {
		payment.ProofPath = ptr.Ptr(req.Proof.Path)
		payment.ProofURL = ptr.Ptr(req.Proof.URL)
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrAlreadyExists) {
			// В оборванной транзакции перечитать нельзя
			if dbmetrics.IsInTransaction(ctx) {
				s.logger.Warn("CreateExtensionPayment: concurrent payment for extension=%d", req.ExtensionID)
				return nil, ErrPaymentExists
			}
			return s.getByExtension(ctx, req.ExtensionID)
		}
		s.logger.Error("CreateExtensionPayment: failed to create payment for extension=%d: %v", req.ExtensionID, err)
		return nil, fmt.Errorf("%w: CreateExtensionPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateExtensionPayment: created payment id=%d, status=%s", created.ID, created.Status)
	return created, nil
}

// EnsureExtensionPayment создает платёж для продления, у которого его нет
func (s *Service) EnsureExtensionPayment(ctx context.Context, extensionID int64) (*domain.Payment, error) {
	ext, err := s.getExtension(ctx, "EnsureExtensionPayment", extensionID)
	if err != nil {
		return nil, err
	}

	payment, err := s.CreateExtensionPayment(ctx, &models.CreateExtensionPaymentRequest{
		ExtensionID: ext.ID,
		RentalID:    ext.RentalID,
		UserID:      ext.UserID,
		Amount:      ext.AdditionalPrice,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.PaymentCreated(payment.ID))
	return payment, nil
}

// AttachExtensionPayment создает платёж продления, если его нет, и прикладывает чек к pending платежу.
// Повторный вызов без чека возвращает существующий платёж.
func (s *Service) AttachExtensionPayment(ctx context.Context, req *models.AttachPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("AttachExtensionPayment: extension=%d by user=%d (admin=%t), proof=%t",
		req.ExtensionID, req.ActorID, req.IsAdmin, req.Proof != nil)

	// 1. Продление и права доступа
	ext, err := s.getExtension(ctx, "AttachExtensionPayment", req.ExtensionID)
	if err != nil {
		return nil, err
	}

	if !req.IsAdmin && ext.UserID != req.ActorID {
		s.logger.Warn("AttachExtensionPayment: access denied for user=%d to extension id=%d", req.ActorID, req.ExtensionID)
		return nil, ErrAccessDenied
	}

	if ext.Status == domain.ExtensionRejected {
		s.logger.Warn("AttachExtensionPayment: extension id=%d is rejected", ext.ID)
		return nil, ErrExtensionRejected
	}

	// 2. Существующий платёж
	existing, err := s.paymentRepo.GetByExtensionID(ctx, ext.ID)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("AttachExtensionPayment: repository error for extension=%d: %v", ext.ID, err)
		return nil, fmt.Errorf("%w: AttachExtensionPayment - repository error: %v", ErrInternal, err)
	}

	if existing != nil {
		if req.Proof == nil {
			return models.FromDomainPayment(existing), nil
		}
		if existing.IsFinal() {
			s.logger.Warn("AttachExtensionPayment: payment id=%d is final, status=%s", existing.ID, existing.Status)
			return nil, ErrPaymentFinal
		}
		if existing.HasProof() || existing.Status != domain.PaymentPending {
			s.logger.Warn("AttachExtensionPayment: payment id=%d already has a proof", existing.ID)
			return nil, ErrProofAlreadyAttached
		}
	}

	// 3. Загружаем чек
	var stored *filestorage.StoredFile
	if req.Proof != nil {
		stored, err = s.UploadProof(ctx, ext.RentalID, *req.Proof)
		if err != nil {
			return nil, err
		}
	}

	// 4. Нет платежа: создаём, сразу с чеком
	if existing == nil {
		created, err := s.CreateExtensionPayment(ctx, &models.CreateExtensionPaymentRequest{
			ExtensionID: ext.ID,
			RentalID:    ext.RentalID,
			UserID:      ext.UserID,
			Amount:      ext.AdditionalPrice,
			Proof:       stored,
		})
		if err != nil {
			return nil, err
		}

		s.publisher.Publish(ctx, realtime.PaymentCreated(created.ID))
		return models.FromDomainPayment(created), nil
	}

	// 5. Прикладываем чек к pending платежу
	if err := s.paymentRepo.AttachProof(ctx, existing.ID, stored.Path, stored.URL); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusChanged) {
			s.logger.Warn("AttachExtensionPayment: payment id=%d changed concurrently", existing.ID)
			return nil, ErrProofAlreadyAttached
		}
		s.logger.Error("AttachExtensionPayment: failed to attach proof to payment id=%d: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: AttachExtensionPayment - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getPayment(ctx, "AttachExtensionPayment", existing.ID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.PaymentUpdated(updated.ID))
	s.logger.Info("AttachExtensionPayment: proof attached to payment id=%d", updated.ID)
	return models.FromDomainPayment(updated), nil
}

// Verify подтверждает платёж (pending или submitted -> verified)
func (s *Service) Verify(ctx context.Context, paymentID int64, adminID int64) (*models.PaymentResponse, error) {
	s.logger.Info("Verify: payment id=%d by admin=%d", paymentID, adminID)

	payment, err := s.getPayment(ctx, "Verify", paymentID)
	if err != nil {
		return nil, err
	}

	if payment.IsFinal() {
		s.logger.Warn("Verify: payment id=%d is final, status=%s", paymentID, payment.Status)
		return nil, ErrPaymentFinal
	}

	if err := s.paymentRepo.Verify(ctx, paymentID, adminID); err != nil {
		return nil, s.mapTransitionError("Verify", paymentID, err)
	}

	return s.reloadAndPublish(ctx, "Verify", paymentID)
}

// Reject отклоняет платёж с обязательной причиной
func (s *Service) Reject(ctx context.Context, paymentID int64, req *models.RejectPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Reject: payment id=%d by admin=%d", paymentID, req.AdminID)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if utf8.RuneCountInString(reason) > domain.MaxRejectReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectReasonLength)
	}

	payment, err := s.getPayment(ctx, "Reject", paymentID)
	if err != nil {
		return nil, err
	}

	if payment.IsFinal() {
		s.logger.Warn("Reject: payment id=%d is final, status=%s", paymentID, payment.Status)
		return nil, ErrPaymentFinal
	}

	if err := s.paymentRepo.Reject(ctx, paymentID, req.AdminID, reason); err != nil {
		return nil, s.mapTransitionError("Reject", paymentID, err)
	}

	return s.reloadAndPublish(ctx, "Reject", paymentID)
}

// GetByRental получает платежи аренды. Доступно владельцу аренды и админу
func (s *Service) GetByRental(ctx context.Context, rentalID int64, userID int64, isAdmin bool) (*models.PaymentListResponse, error) {
	s.logger.Info("GetByRental: rental id=%d for user=%d", rentalID, userID)

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, rentalRepo.ErrRentalNotFound) {
			return nil, ErrRentalNotFound
		}
		s.logger.Error("GetByRental: repository error for rental id=%d: %v", rentalID, err)
		return nil, fmt.Errorf("%w: GetByRental - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && rental.UserID != userID {
		s.logger.Warn("GetByRental: access denied for user=%d to rental id=%d", userID, rentalID)
		return nil, ErrAccessDenied
	}

	list, err := s.paymentRepo.GetByRentalID(ctx, rentalID)
	if err != nil {
		s.logger.Error("GetByRental: repository error for rental id=%d: %v", rentalID, err)
		return nil, fmt.Errorf("%w: GetByRental - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByRental: fetched %d payments for rental id=%d", len(list), rentalID)
	return models.FromDomainPaymentList(list), nil
}

// GetPayment получает платёж по ID
func (s *Service) GetPayment(ctx context.Context, paymentID int64) (*models.PaymentResponse, error) {
	payment, err := s.getPayment(ctx, "GetPayment", paymentID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPayment(payment), nil
}

func (s *Service) reloadAndPublish(ctx context.Context, method string, paymentID int64) (*models.PaymentResponse, error) {
	payment, err := s.getPayment(ctx, method, paymentID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.PaymentUpdated(paymentID))
	s.logger.Info("%s: payment id=%d is now %s", method, paymentID, payment.Status)
	return models.FromDomainPayment(payment), nil
}

func (s *Service) mapTransitionError(method string, paymentID int64, err error) error {
	switch {
	case errors.Is(err, paymentRepo.ErrStatusChanged):
		s.logger.Warn("%s: payment id=%d changed concurrently", method, paymentID)
		return ErrPaymentFinal
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		return ErrPaymentNotFound
	default:
		s.logger.Error("%s: repository error for payment id=%d: %v", method, paymentID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}

func (s *Service) getPayment(ctx context.Context, method string, id int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", method, id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return payment, nil
}

func (s *Service) getByExtension(ctx context.Context, extensionID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByExtensionID(ctx, extensionID)
	if err != nil {
		s.logger.Error("CreateExtensionPayment: failed to re-read payment for extension=%d: %v", extensionID, err)
		return nil, fmt.Errorf("%w: CreateExtensionPayment - repository error: %v", ErrInternal, err)
	}
	return payment, nil
}

func (s *Service) getExtension(ctx context.Context, method string, id int64) (*domain.ExtensionWithRental, error) {
	ext, err := s.extensionRepo.GetWithRentalByID(ctx, id)
	if err != nil {
		if errors.Is(err, extensionRepo.ErrExtensionNotFound) {
			s.logger.Warn("%s: extension id=%d not found", method, id)
			return nil, ErrExtensionNotFound
		}
		s.logger.Error("%s: repository error for extension id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return ext, nil
}
