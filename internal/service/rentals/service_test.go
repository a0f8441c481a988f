package rentals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/service/rentals/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
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

func (m *mockRentalRepo) GetByUserID(ctx context.Context, userID int64, status *domain.RentalStatus) ([]*domain.Rental, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) GetWithFilter(ctx context.Context, filter domain.RentalsFilter) ([]*domain.Rental, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

func (m *mockRentalRepo) UpdateStatus(ctx context.Context, id int64, status domain.RentalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockRentalRepo) UpdateShippingStatus(ctx context.Context, id int64, status domain.ShippingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type recordingPublisher struct{ events []realtime.Event }

func (p *recordingPublisher) Publish(_ context.Context, events ...realtime.Event) {
	p.events = append(p.events, events...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRental(status domain.RentalStatus, shipping domain.ShippingStatus) *domain.Rental {
	return &domain.Rental{
		ID:             1,
		UserID:         7,
		CameraID:       3,
		StartDate:      types.MustParseDate("2024-01-05"),
		EndDate:        types.MustParseDate("2024-01-10"),
		RentalStatus:   status,
		ShippingStatus: shipping,
		PricePerDay:    500,
		TotalPrice:     3000,
	}
}

func TestGetByID_Access(t *testing.T) {
	repo := &mockRentalRepo{}
	s := NewService(repo, &recordingPublisher{}, nopLogger{})
	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalActive, domain.ShippingDelivered), nil)

	resp, err := s.GetByID(context.Background(), 1, 7, false)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Days)

	_, err = s.GetByID(context.Background(), 1, 8, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetByID(context.Background(), 1, 8, true)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockRentalRepo{}
	s := NewService(repo, &recordingPublisher{}, nopLogger{})
	repo.On("GetByID", mock.Anything, int64(1)).Return(nil, rentalRepo.ErrRentalNotFound)

	_, err := s.GetByID(context.Background(), 1, 7, false)
	assert.ErrorIs(t, err, ErrRentalNotFound)
}

func TestGetUserRentals_InvalidStatus(t *testing.T) {
	s := NewService(&mockRentalRepo{}, &recordingPublisher{}, nopLogger{})

	_, err := s.GetUserRentals(context.Background(), &models.GetUserRentalsRequest{UserID: 7, Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRentals_InvalidPeriod(t *testing.T) {
	s := NewService(&mockRentalRepo{}, &recordingPublisher{}, nopLogger{})

	_, err := s.GetRentals(context.Background(), &models.GetRentalsRequest{
		From: ptr.Ptr(types.MustParseDate("2024-02-01")),
		To:   ptr.Ptr(types.MustParseDate("2024-01-01")),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRentals_Filter(t *testing.T) {
	repo := &mockRentalRepo{}
	s := NewService(repo, &recordingPublisher{}, nopLogger{})

	pending := domain.RentalPending
	repo.On("GetWithFilter", mock.Anything, domain.RentalsFilter{Status: &pending, CameraID: ptr.Ptr(int64(3))}).
		Return([]*domain.Rental{testRental(domain.RentalPending, domain.ShippingPending)}, nil)

	resp, err := s.GetRentals(context.Background(), &models.GetRentalsRequest{Status: ptr.Ptr("pending"), CameraID: ptr.Ptr(int64(3))})
	require.NoError(t, err)
	assert.Len(t, resp.Rentals, 1)
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockRentalRepo{}
	pub := &recordingPublisher{}
	s := NewService(repo, pub, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalConfirmed, domain.ShippingDelivered), nil).Once()
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.RentalActive).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalActive, domain.ShippingDelivered), nil).Once()

	resp, err := s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{AdminID: 1, Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.RentalStatus)
	assert.Equal(t, []realtime.Event{realtime.RentalUpdated(1)}, pub.events)
}

func TestUpdateStatus_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		current domain.RentalStatus
		next    string
		wantErr error
	}{
		{name: "unknown status", current: domain.RentalActive, next: "lost", wantErr: ErrInvalidStatus},
		{name: "pending confirm bypass", current: domain.RentalPending, next: "confirmed", wantErr: ErrConfirmationRequired},
		{name: "pending reject bypass", current: domain.RentalPending, next: "rejected", wantErr: ErrConfirmationRequired},
		{name: "terminal", current: domain.RentalCompleted, next: "active", wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRentalRepo{}
			s := NewService(repo, &recordingPublisher{}, nopLogger{})
			repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(tt.current, domain.ShippingPending), nil)

			_, err := s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{AdminID: 1, Status: tt.next})
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateShippingStatus(t *testing.T) {
	repo := &mockRentalRepo{}
	s := NewService(repo, &recordingPublisher{}, nopLogger{})

	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalActive, domain.ShippingInTransit), nil).Once()
	repo.On("UpdateShippingStatus", mock.Anything, int64(1), domain.ShippingDelivered).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalActive, domain.ShippingDelivered), nil).Once()

	resp, err := s.UpdateShippingStatus(context.Background(), 1, &models.UpdateShippingRequest{AdminID: 1, Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.ShippingStatus)
}

func TestUpdateShippingStatus_SkipStep(t *testing.T) {
	repo := &mockRentalRepo{}
	s := NewService(repo, &recordingPublisher{}, nopLogger{})
	repo.On("GetByID", mock.Anything, int64(1)).Return(testRental(domain.RentalActive, domain.ShippingPending), nil)

	_, err := s.UpdateShippingStatus(context.Background(), 1, &models.UpdateShippingRequest{AdminID: 1, Status: "delivered"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
