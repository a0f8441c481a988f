package request_extension

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	paymentModels "github.com/m04kA/SMC-RentalService/internal/service/payments/models"
	"github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type mockRentalRepo struct{ mock.Mock }

func (m *mockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) LockCamera(ctx context.Context, cameraID int64) error {
	return m.Called(ctx, cameraID).Error(0)
}

func (m *mockRentalRepo) FindOverlapping(
	ctx context.Context,
	cameraID int64,
	from, to types.Date,
	statuses []domain.RentalStatus,
	excludeRentalID int64,
) ([]*domain.Rental, error) {
	args := m.Called(ctx, cameraID, from, to, statuses, excludeRentalID)
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

type mockExtensionRepo struct{ mock.Mock }

func (m *mockExtensionRepo) Create(ctx context.Context, ext *domain.Extension) (*domain.Extension, error) {
	args := m.Called(ctx, ext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extension), args.Error(1)
}

type mockPayments struct{ mock.Mock }

func (m *mockPayments) CreateExtensionPayment(ctx context.Context, req *paymentModels.CreateExtensionPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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
	rentals    *mockRentalRepo
	extensions *mockExtensionRepo
	payments   *mockPayments
	tx         *fakeTx
	publisher  *recordingPublisher
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		rentals:    &mockRentalRepo{},
		extensions: &mockExtensionRepo{},
		payments:   &mockPayments{},
		tx:         &fakeTx{},
		publisher:  &recordingPublisher{},
	}
	checker := check_availability.NewUseCase(f.rentals, nopLogger{})
	f.uc = NewUseCase(f.rentals, f.extensions, checker, f.payments, f.tx, f.publisher, nopLogger{})
	return f
}

func rental(status domain.RentalStatus) *domain.Rental {
	return &domain.Rental{
		ID:             1,
		UserID:         7,
		CameraID:       3,
		StartDate:      types.MustParseDate("2024-01-05"),
		EndDate:        types.MustParseDate("2024-01-10"),
		RentalStatus:   status,
		ShippingStatus: domain.ShippingDelivered,
		PricePerDay:    500,
	}
}

func request() *Request {
	return &Request{RentalID: 1, UserID: 7, NewEndDate: types.MustParseDate("2024-01-13")}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("FindOverlapping", mock.Anything, int64(3),
		types.MustParseDate("2024-01-11"), types.MustParseDate("2024-01-13"),
		domain.AvailabilityBlockingStatuses, int64(1)).
		Return([]*domain.Rental{}, nil)
	f.extensions.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Extension) bool {
		return e.ExtensionDays == 3 &&
			e.AdditionalPrice == 1500 &&
			e.OriginalEndDate.Equal(types.MustParseDate("2024-01-10")) &&
			e.Status == domain.ExtensionPending &&
			e.RequestedBy == 7 &&
			e.RequestedByRole == domain.RoleUser
	})).Return(&domain.Extension{
		ID:               10,
		RentalID:         1,
		OriginalEndDate:  types.MustParseDate("2024-01-10"),
		RequestedEndDate: types.MustParseDate("2024-01-13"),
		ExtensionDays:    3,
		AdditionalPrice:  1500,
		Status:           domain.ExtensionPending,
		RequestedBy:      7,
		RequestedByRole:  domain.RoleUser,
	}, nil)
	f.payments.On("CreateExtensionPayment", mock.Anything, &paymentModels.CreateExtensionPaymentRequest{
		ExtensionID: 10, RentalID: 1, UserID: 7, Amount: 1500,
	}).Return(&domain.Payment{ID: 50, Status: domain.PaymentPending}, nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ExtensionID)
	assert.Equal(t, 3, resp.ExtensionDays)
	assert.Equal(t, 1500.0, resp.AdditionalPrice)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(50), resp.PaymentID)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []realtime.Event{realtime.ExtensionCreated(10), realtime.PaymentCreated(50)}, f.publisher.events)
}

func TestExecute_NotOwner(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)

	_, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, UserID: 8, NewEndDate: types.MustParseDate("2024-01-13")})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, f.tx.calls)
	f.extensions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_EndDateNotAfterCurrent(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)

	_, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, UserID: 7, NewEndDate: types.MustParseDate("2024-01-10")})
	assert.ErrorIs(t, err, ErrEndDateNotAfterCurrent)
	assert.Zero(t, f.tx.calls)
}

func TestExecute_CameraUnavailable(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Rental{{ID: 20, RentalStatus: domain.RentalConfirmed}}, nil)

	_, err := f.uc.Execute(context.Background(), request())
	require.ErrorIs(t, err, ErrCameraUnavailable)
	assert.Contains(t, err.Error(), "camera is already booked between 2024-01-11 and 2024-01-13")
	f.extensions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

// Путь арендатора не проверяет active + delivered: аренду в статусе confirmed
// тоже можно продлить, второй запрос отсекает только уникальный индекс.
func TestExecute_UserPathSkipsEligibilityGate(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalConfirmed), nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Rental{}, nil)
	f.extensions.On("Create", mock.Anything, mock.Anything).Return(nil, extensionRepo.ErrPendingExists)

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrPendingExtensionExists)
	f.payments.AssertNotCalled(t, "CreateExtensionPayment", mock.Anything, mock.Anything)
}

func TestExecute_PaymentFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Rental{}, nil)
	f.extensions.On("Create", mock.Anything, mock.Anything).Return(&domain.Extension{ID: 10, AdditionalPrice: 1500}, nil)
	f.payments.On("CreateExtensionPayment", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

	_, err := f.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("rental not found", func(t *testing.T) {
		f := newFixture()
		f.rentals.On("GetByID", mock.Anything, int64(1)).Return(nil, rentalRepo.ErrRentalNotFound)

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrRentalNotFound)
	})

	t.Run("lock fails", func(t *testing.T) {
		f := newFixture()
		f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rental(domain.RentalActive), nil)
		f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(rentalRepo.ErrTransaction)

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, NewEndDate: types.MustParseDate("2024-01-13")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
