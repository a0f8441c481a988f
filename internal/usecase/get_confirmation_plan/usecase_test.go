package get_confirmation_plan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
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

type mockCameraRepo struct{ mock.Mock }

func (m *mockCameraRepo) FindAvailableUnits(
	ctx context.Context,
	name string,
	excludeCameraID int64,
	from, to types.Date,
	statuses []domain.RentalStatus,
	excludeRentalID int64,
) ([]*domain.Camera, error) {
	args := m.Called(ctx, name, excludeCameraID, from, to, statuses, excludeRentalID)
	return args.Get(0).([]*domain.Camera), args.Error(1)
}

type fakeTx struct{ readOnly int }

func (f *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnly++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	start = types.MustParseDate("2024-02-01")
	end   = types.MustParseDate("2024-02-05")
)

func pendingRental() *domain.Rental {
	return &domain.Rental{
		ID:           1,
		UserID:       7,
		CameraID:     3,
		CameraName:   "Sony A7 III",
		StartDate:    start,
		EndDate:      end,
		RentalStatus: domain.RentalPending,
	}
}

func TestExecute_TransferDefault(t *testing.T) {
	rentals := &mockRentalRepo{}
	cameras := &mockCameraRepo{}
	tx := &fakeTx{}
	uc := NewUseCase(rentals, cameras, tx, nopLogger{})

	rentals.On("GetByID", mock.Anything, int64(1)).Return(pendingRental(), nil)
	rentals.On("FindOverlapping", mock.Anything, int64(3), start, end, domain.ConflictStatuses, int64(1)).
		Return([]*domain.Rental{
			{ID: 20, UserID: 8, RentalStatus: domain.RentalConfirmed},
			{ID: 21, UserID: 9, RentalStatus: domain.RentalPending},
		}, nil)
	cameras.On("FindAvailableUnits", mock.Anything, "Sony A7 III", int64(3), start, end, domain.ConflictStatuses, int64(1)).
		Return([]*domain.Camera{{ID: 4, Name: "Sony A7 III", SerialNumber: "U2"}}, nil)

	resp, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, tx.readOnly)
	assert.True(t, resp.HasConflicts)
	assert.Equal(t, "transfer", resp.DefaultAction)
	assert.Equal(t, []string{"transfer", "reject_conflicts", "confirm_anyway"}, resp.Actions)
	assert.NotContains(t, resp.Actions, "reject_current")
	assert.Equal(t, "strong", resp.Warning)
	assert.NotEmpty(t, resp.WarningText)
	assert.Len(t, resp.ConfirmedConflicts, 1)
	assert.Len(t, resp.PendingConflicts, 1)
	assert.Equal(t, "U2", resp.AvailableUnits[0].SerialNumber)
}

func TestExecute_RejectCurrentDefault(t *testing.T) {
	rentals := &mockRentalRepo{}
	cameras := &mockCameraRepo{}
	uc := NewUseCase(rentals, cameras, &fakeTx{}, nopLogger{})

	rentals.On("GetByID", mock.Anything, int64(1)).Return(pendingRental(), nil)
	rentals.On("FindOverlapping", mock.Anything, int64(3), start, end, domain.ConflictStatuses, int64(1)).
		Return([]*domain.Rental{{ID: 21, RentalStatus: domain.RentalPending}}, nil)
	cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil)

	resp, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "reject_current", resp.DefaultAction)
	assert.NotContains(t, resp.Actions, "transfer")
	assert.Contains(t, resp.Actions, "reject_conflicts")
	assert.Equal(t, "standard", resp.Warning)
}

func TestExecute_NoConflicts(t *testing.T) {
	rentals := &mockRentalRepo{}
	cameras := &mockCameraRepo{}
	uc := NewUseCase(rentals, cameras, &fakeTx{}, nopLogger{})

	rentals.On("GetByID", mock.Anything, int64(1)).Return(pendingRental(), nil)
	rentals.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Rental{}, nil)

	resp, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, resp.HasConflicts)
	assert.Equal(t, []string{"confirm"}, resp.Actions)
	assert.Equal(t, "none", resp.Warning)
	cameras.AssertNotCalled(t, "FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("not pending", func(t *testing.T) {
		rentals := &mockRentalRepo{}
		uc := NewUseCase(rentals, &mockCameraRepo{}, &fakeTx{}, nopLogger{})
		r := pendingRental()
		r.RentalStatus = domain.RentalConfirmed
		rentals.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

		_, err := uc.Execute(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRentalNotPending)
	})

	t.Run("not found", func(t *testing.T) {
		rentals := &mockRentalRepo{}
		uc := NewUseCase(rentals, &mockCameraRepo{}, &fakeTx{}, nopLogger{})
		rentals.On("GetByID", mock.Anything, int64(1)).Return(nil, rentalRepo.ErrRentalNotFound)

		_, err := uc.Execute(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRentalNotFound)
	})

	t.Run("overlap query fails", func(t *testing.T) {
		rentals := &mockRentalRepo{}
		uc := NewUseCase(rentals, &mockCameraRepo{}, &fakeTx{}, nopLogger{})
		rentals.On("GetByID", mock.Anything, int64(1)).Return(pendingRental(), nil)
		rentals.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]*domain.Rental(nil), errors.New("boom"))

		_, err := uc.Execute(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
