package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByExtensionID(ctx context.Context, extensionID int64) (*domain.Payment, error) {
	args := m.Called(ctx, extensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) GetByRentalID(ctx context.Context, rentalID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) AttachProof(ctx context.Context, id int64, path, url string) error {
	return m.Called(ctx, id, path, url).Error(0)
}

func (m *mockPaymentRepo) Verify(ctx context.Context, id int64, adminID int64) error {
	return m.Called(ctx, id, adminID).Error(0)
}

func (m *mockPaymentRepo) Reject(ctx context.Context, id int64, adminID int64, reason string) error {
	return m.Called(ctx, id, adminID, reason).Error(0)
}

type mockExtensionRepo struct{ mock.Mock }

func (m *mockExtensionRepo) GetWithRentalByID(ctx context.Context, id int64) (*domain.ExtensionWithRental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtensionWithRental), args.Error(1)
}

type mockRentalRepo struct{ mock.Mock }

func (m *mockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Upload(ctx context.Context, rentalID int64, file filestorage.File) (*filestorage.StoredFile, error) {
	args := m.Called(ctx, rentalID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filestorage.StoredFile), args.Error(1)
}

type recordingPublisher struct{ events []realtime.Event }

func (p *recordingPublisher) Publish(_ context.Context, events ...realtime.Event) {
	p.events = append(p.events, events...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	payments   *mockPaymentRepo
	extensions *mockExtensionRepo
	rentals    *mockRentalRepo
	storage    *mockStorage
	publisher  *recordingPublisher
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		payments:   &mockPaymentRepo{},
		extensions: &mockExtensionRepo{},
		rentals:    &mockRentalRepo{},
		storage:    &mockStorage{},
		publisher:  &recordingPublisher{},
	}
	f.service = NewService(f.payments, f.extensions, f.rentals, f.storage, f.publisher, nopLogger{})
	return f
}

func testExtension() *domain.ExtensionWithRental {
	return &domain.ExtensionWithRental{
		Extension: domain.Extension{
			ID:              10,
			RentalID:        1,
			ExtensionDays:   3,
			AdditionalPrice: 1500,
			Status:          domain.ExtensionPending,
		},
		UserID: 7,
	}
}

func TestCreateExtensionPayment_ReturnsExisting(t *testing.T) {
	f := newFixture()
	existing := &domain.Payment{ID: 99, ExtensionID: ptr.Ptr(int64(10)), Status: domain.PaymentPending}
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(existing, nil)

	got, err := f.service.CreateExtensionPayment(context.Background(), &models.CreateExtensionPaymentRequest{
		ExtensionID: 10, RentalID: 1, UserID: 7, Amount: 1500,
	})
	require.NoError(t, err)
	assert.Same(t, existing, got)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateExtensionPayment_StatusFollowsProof(t *testing.T) {
	tests := []struct {
		name       string
		proof      *filestorage.StoredFile
		wantStatus domain.PaymentStatus
	}{
		{name: "without proof", wantStatus: domain.PaymentPending},
		{name: "with proof", proof: &filestorage.StoredFile{Path: "payments/1/a.png", URL: "https://cdn/a.png"}, wantStatus: domain.PaymentSubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(nil, paymentRepo.ErrPaymentNotFound)
			f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
				return p.Type == domain.PaymentTypeExtension &&
					*p.ExtensionID == 10 &&
					p.Amount == 1500 &&
					p.Status == tt.wantStatus &&
					p.HasProof() == (tt.proof != nil)
			})).Return(&domain.Payment{ID: 5, Status: tt.wantStatus}, nil)

			got, err := f.service.CreateExtensionPayment(context.Background(), &models.CreateExtensionPaymentRequest{
				ExtensionID: 10, RentalID: 1, UserID: 7, Amount: 1500, Proof: tt.proof,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			f.payments.AssertExpectations(t)
		})
	}
}

func TestCreateExtensionPayment_RaceOutsideTransactionReReads(t *testing.T) {
	f := newFixture()
	winner := &domain.Payment{ID: 42}
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(nil, paymentRepo.ErrPaymentNotFound).Once()
	f.payments.On("Create", mock.Anything, mock.Anything).Return(nil, paymentRepo.ErrAlreadyExists)
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(winner, nil).Once()

	got, err := f.service.CreateExtensionPayment(context.Background(), &models.CreateExtensionPaymentRequest{ExtensionID: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
}

func TestAttachExtensionPayment_AccessDenied(t *testing.T) {
	f := newFixture()
	f.extensions.On("GetWithRentalByID", mock.Anything, int64(10)).Return(testExtension(), nil)

	_, err := f.service.AttachExtensionPayment(context.Background(), &models.AttachPaymentRequest{ExtensionID: 10, ActorID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
	f.payments.AssertNotCalled(t, "GetByExtensionID", mock.Anything, mock.Anything)
}

func TestAttachExtensionPayment_CreatesMissingPaymentWithProof(t *testing.T) {
	f := newFixture()
	file := filestorage.File{Name: "r.png", ContentType: "image/png", Content: []byte("x")}
	stored := &filestorage.StoredFile{Path: "payments/1/k.png", URL: "https://cdn/k.png"}

	f.extensions.On("GetWithRentalByID", mock.Anything, int64(10)).Return(testExtension(), nil)
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(nil, paymentRepo.ErrPaymentNotFound)
	f.storage.On("Upload", mock.Anything, int64(1), file).Return(stored, nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentSubmitted && *p.ProofPath == stored.Path && p.UserID == 7
	})).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil)

	resp, err := f.service.AttachExtensionPayment(context.Background(), &models.AttachPaymentRequest{
		ExtensionID: 10, ActorID: 7, Proof: &file,
	})
	require.NoError(t, err)
	assert.Equal(t, "submitted", resp.Status)
	assert.Equal(t, []realtime.Event{realtime.PaymentCreated(5)}, f.publisher.events)
}

func TestAttachExtensionPayment_AttachesProofToPending(t *testing.T) {
	f := newFixture()
	file := filestorage.File{Name: "r.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}
	stored := &filestorage.StoredFile{Path: "payments/1/k.pdf", URL: "https://cdn/k.pdf"}

	f.extensions.On("GetWithRentalByID", mock.Anything, int64(10)).Return(testExtension(), nil)
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(&domain.Payment{ID: 5, Status: domain.PaymentPending}, nil)
	f.storage.On("Upload", mock.Anything, int64(1), file).Return(stored, nil)
	f.payments.On("AttachProof", mock.Anything, int64(5), stored.Path, stored.URL).Return(nil)
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil)

	resp, err := f.service.AttachExtensionPayment(context.Background(), &models.AttachPaymentRequest{
		ExtensionID: 10, ActorID: 1, IsAdmin: true, Proof: &file,
	})
	require.NoError(t, err)
	assert.Equal(t, "submitted", resp.Status)
	assert.Equal(t, []realtime.Event{realtime.PaymentUpdated(5)}, f.publisher.events)
}

func TestAttachExtensionPayment_RejectsProofForFinalPayment(t *testing.T) {
	f := newFixture()
	f.extensions.On("GetWithRentalByID", mock.Anything, int64(10)).Return(testExtension(), nil)
	f.payments.On("GetByExtensionID", mock.Anything, int64(10)).Return(&domain.Payment{ID: 5, Status: domain.PaymentVerified}, nil)

	_, err := f.service.AttachExtensionPayment(context.Background(), &models.AttachPaymentRequest{
		ExtensionID: 10, ActorID: 7, Proof: &filestorage.File{Content: []byte("x")},
	})
	assert.ErrorIs(t, err, ErrPaymentFinal)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachExtensionPayment_RejectedExtension(t *testing.T) {
	f := newFixture()
	ext := testExtension()
	ext.Status = domain.ExtensionRejected
	f.extensions.On("GetWithRentalByID", mock.Anything, int64(10)).Return(ext, nil)

	_, err := f.service.AttachExtensionPayment(context.Background(), &models.AttachPaymentRequest{
		ExtensionID: 10, ActorID: 7, Proof: &filestorage.File{Content: []byte("x")},
	})
	assert.ErrorIs(t, err, ErrExtensionRejected)
	f.payments.AssertNotCalled(t, "GetByExtensionID", mock.Anything, mock.Anything)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestUploadProof_StorageDisabled(t *testing.T) {
	s := NewService(&mockPaymentRepo{}, &mockExtensionRepo{}, &mockRentalRepo{}, nil, &recordingPublisher{}, nopLogger{})

	_, err := s.UploadProof(context.Background(), 1, filestorage.File{Content: []byte("x")})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestUploadProof_InvalidFile(t *testing.T) {
	f := newFixture()
	f.storage.On("Upload", mock.Anything, int64(1), mock.Anything).Return(nil, filestorage.ErrUnsupportedType)

	_, err := f.service.UploadProof(context.Background(), 1, filestorage.File{Content: []byte("x")})
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestVerify(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil).Once()
	f.payments.On("Verify", mock.Anything, int64(5), int64(1)).Return(nil)
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentVerified}, nil).Once()

	resp, err := f.service.Verify(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "verified", resp.Status)
	assert.Equal(t, []realtime.Event{realtime.PaymentUpdated(5)}, f.publisher.events)
}

func TestVerify_FinalPayment(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentRejected}, nil)

	_, err := f.service.Verify(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrPaymentFinal)
	f.payments.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_ConcurrentChange(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil)
	f.payments.On("Verify", mock.Anything, int64(5), int64(1)).Return(paymentRepo.ErrStatusChanged)

	_, err := f.service.Verify(context.Background(), 5, 1)
	assert.ErrorIs(t, err, ErrPaymentFinal)
}

func TestReject_RequiresReason(t *testing.T) {
	f := newFixture()

	_, err := f.service.Reject(context.Background(), 5, &models.RejectPaymentRequest{AdminID: 1, Reason: "   "})
	assert.ErrorIs(t, err, ErrReasonRequired)
	f.payments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReject(t *testing.T) {
	f := newFixture()
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil).Once()
	f.payments.On("Reject", mock.Anything, int64(5), int64(1), "blurry receipt").Return(nil)
	f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentRejected}, nil).Once()

	resp, err := f.service.Reject(context.Background(), 5, &models.RejectPaymentRequest{AdminID: 1, Reason: " blurry receipt "})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
}

func TestReject_ReasonLengthCountsCharacters(t *testing.T) {
	t.Run("ровно лимит кириллицей", func(t *testing.T) {
		f := newFixture()
		reason := strings.Repeat("я", domain.MaxRejectReasonLength)
		f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentSubmitted}, nil).Once()
		f.payments.On("Reject", mock.Anything, int64(5), int64(1), reason).Return(nil)
		f.payments.On("GetByID", mock.Anything, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentRejected}, nil).Once()

		_, err := f.service.Reject(context.Background(), 5, &models.RejectPaymentRequest{AdminID: 1, Reason: reason})
		require.NoError(t, err)
	})

	t.Run("на символ больше", func(t *testing.T) {
		f := newFixture()
		reason := strings.Repeat("я", domain.MaxRejectReasonLength+1)

		_, err := f.service.Reject(context.Background(), 5, &models.RejectPaymentRequest{AdminID: 1, Reason: reason})
		assert.ErrorIs(t, err, ErrInvalidInput)
		f.payments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestGetByRental_AccessDenied(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(&domain.Rental{ID: 1, UserID: 7}, nil)

	_, err := f.service.GetByRental(context.Background(), 1, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByRental(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(&domain.Rental{ID: 1, UserID: 7}, nil)
	f.payments.On("GetByRentalID", mock.Anything, int64(1)).Return([]*domain.Payment{
		{ID: 1, Type: domain.PaymentTypeRental},
		{ID: 2, Type: domain.PaymentTypeExtension, ExtensionID: ptr.Ptr(int64(10))},
	}, nil)

	resp, err := f.service.GetByRental(context.Background(), 1, 7, false)
	require.NoError(t, err)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "extension", resp.Payments[1].Type)
}
