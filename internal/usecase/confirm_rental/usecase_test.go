package confirm_rental

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/usecase/get_confirmation_plan"
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

func (m *mockRentalRepo) LockCamera(ctx context.Context, cameraID int64) error {
	return m.Called(ctx, cameraID).Error(0)
}

func (m *mockRentalRepo) Confirm(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRentalRepo) TransferAndConfirm(ctx context.Context, id int64, cameraID int64) error {
	return m.Called(ctx, id, cameraID).Error(0)
}

func (m *mockRentalRepo) Reject(ctx context.Context, ids []int64, reason string) error {
	return m.Called(ctx, ids, reason).Error(0)
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

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) RentalConfirmed(ctx context.Context, r *domain.Rental) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockNotifier) RentalRejected(ctx context.Context, r *domain.Rental, reason string) error {
	return m.Called(ctx, r, reason).Error(0)
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
	rentals   *mockRentalRepo
	cameras   *mockCameraRepo
	notifier  *mockNotifier
	tx        *fakeTx
	publisher *recordingPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		rentals:   &mockRentalRepo{},
		cameras:   &mockCameraRepo{},
		notifier:  &mockNotifier{},
		tx:        &fakeTx{},
		publisher: &recordingPublisher{},
	}
	planner := get_confirmation_plan.NewUseCase(f.rentals, f.cameras, nil, nopLogger{})
	f.uc = NewUseCase(f.rentals, planner, f.notifier, f.tx, f.publisher, nopLogger{})
	return f
}

func rentalWithStatus(status domain.RentalStatus) *domain.Rental {
	return &domain.Rental{
		ID:           1,
		UserID:       7,
		CameraID:     3,
		CameraName:   "Sony A7 III",
		StartDate:    types.MustParseDate("2024-02-01"),
		EndDate:      types.MustParseDate("2024-02-05"),
		RentalStatus: status,
	}
}

var (
	confirmedConflict = &domain.Rental{ID: 20, UserID: 8, RentalStatus: domain.RentalConfirmed}
	pendingConflict   = &domain.Rental{ID: 21, UserID: 9, RentalStatus: domain.RentalPending}
)

// pendingTwiceThen первые два чтения видят pending аренду, финальное чтение видит результат
func (f *fixture) pendingTwiceThen(final *domain.Rental) {
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rentalWithStatus(domain.RentalPending), nil).Twice()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(final, nil).Once()
}

func (f *fixture) conflicts(rentals ...*domain.Rental) {
	f.rentals.On("FindOverlapping", mock.Anything, int64(3), mock.Anything, mock.Anything, domain.ConflictStatuses, int64(1)).
		Return(rentals, nil)
}

func TestExecute_Transfer(t *testing.T) {
	f := newFixture()

	moved := rentalWithStatus(domain.RentalConfirmed)
	moved.CameraID = 4

	f.pendingTwiceThen(moved)
	f.conflicts(confirmedConflict, pendingConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, "Sony A7 III", int64(3), mock.Anything, mock.Anything, mock.Anything, int64(1)).
		Return([]*domain.Camera{{ID: 4, SerialNumber: "U2"}}, nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil).Once()
	f.rentals.On("LockCamera", mock.Anything, int64(4)).Return(nil).Once()
	f.rentals.On("TransferAndConfirm", mock.Anything, int64(1), int64(4)).Return(nil)
	f.notifier.On("RentalConfirmed", mock.Anything, moved).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		RentalID: 1, AdminID: 99, Action: "transfer", SelectedUnitID: ptr.Ptr(int64(4)),
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.RentalStatus)
	assert.Equal(t, int64(4), resp.CameraID)
	assert.Empty(t, resp.RejectedRentalIDs)
	assert.False(t, resp.DoubleBooked)
	assert.Equal(t, []realtime.Event{realtime.RentalUpdated(1)}, f.publisher.events)
	f.rentals.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestExecute_RejectConflicts(t *testing.T) {
	f := newFixture()

	f.pendingTwiceThen(rentalWithStatus(domain.RentalConfirmed))
	f.conflicts(pendingConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("Reject", mock.Anything, []int64{21}, "dates are taken").Return(nil)
	f.rentals.On("Confirm", mock.Anything, int64(1)).Return(nil)
	f.notifier.On("RentalRejected", mock.Anything, pendingConflict, "dates are taken").Return(nil)
	f.notifier.On("RentalConfirmed", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		RentalID: 1, AdminID: 99, Action: "reject_conflicts", RejectionReason: "  dates are taken ",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{21}, resp.RejectedRentalIDs)
	assert.Equal(t, []realtime.Event{realtime.RentalUpdated(1), realtime.RentalUpdated(21)}, f.publisher.events)
	f.notifier.AssertExpectations(t)
}

func TestExecute_RejectCurrent(t *testing.T) {
	f := newFixture()

	rejected := rentalWithStatus(domain.RentalRejected)
	f.pendingTwiceThen(rejected)
	f.conflicts(confirmedConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("Reject", mock.Anything, []int64{1}, "unit is booked").Return(nil)
	f.notifier.On("RentalRejected", mock.Anything, mock.Anything, "unit is booked").Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		RentalID: 1, AdminID: 99, Action: "reject_current", RejectionReason: "unit is booked",
	})
	require.NoError(t, err)

	assert.Equal(t, "rejected", resp.RentalStatus)
	assert.Equal(t, []int64{1}, resp.RejectedRentalIDs)
	f.notifier.AssertNotCalled(t, "RentalConfirmed", mock.Anything, mock.Anything)
}

func TestExecute_ConfirmAnyway(t *testing.T) {
	f := newFixture()

	f.pendingTwiceThen(rentalWithStatus(domain.RentalConfirmed))
	f.conflicts(confirmedConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("Confirm", mock.Anything, int64(1)).Return(nil)
	f.notifier.On("RentalConfirmed", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, AdminID: 99, Action: "confirm_anyway"})
	require.NoError(t, err)
	assert.True(t, resp.DoubleBooked)
}

func TestExecute_SubmissionGuard(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		units   []*domain.Camera
		wantErr error
	}{
		{
			name:    "transfer without unit",
			req:     &Request{RentalID: 1, AdminID: 99, Action: "transfer"},
			units:   []*domain.Camera{{ID: 4}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reject conflicts without reason",
			req:     &Request{RentalID: 1, AdminID: 99, Action: "reject_conflicts", RejectionReason: "  "},
			units:   []*domain.Camera{},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reject current hidden when unit exists",
			req:     &Request{RentalID: 1, AdminID: 99, Action: "reject_current", RejectionReason: "taken"},
			units:   []*domain.Camera{{ID: 4}},
			wantErr: ErrActionNotAvailable,
		},
		{
			name:    "transfer to busy unit",
			req:     &Request{RentalID: 1, AdminID: 99, Action: "transfer", SelectedUnitID: ptr.Ptr(int64(5))},
			units:   []*domain.Camera{{ID: 4}},
			wantErr: ErrUnitNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rentalWithStatus(domain.RentalPending), nil)
			f.conflicts(pendingConflict)
			f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.units, nil)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_PlanChangedUnderLock(t *testing.T) {
	f := newFixture()

	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rentalWithStatus(domain.RentalPending), nil)
	f.conflicts(pendingConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{{ID: 4}}, nil).Once()
	// Юнит заняли между показом вариантов и блокировкой
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil).Once()
	f.rentals.On("LockCamera", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		RentalID: 1, AdminID: 99, Action: "transfer", SelectedUnitID: ptr.Ptr(int64(4)),
	})
	assert.ErrorIs(t, err, ErrConflictsChanged)
	f.rentals.AssertNotCalled(t, "TransferAndConfirm", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_ConcurrentStatusChange(t *testing.T) {
	f := newFixture()

	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rentalWithStatus(domain.RentalPending), nil)
	f.conflicts(pendingConflict)
	f.cameras.On("FindAvailableUnits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Camera{}, nil)
	f.rentals.On("LockCamera", mock.Anything, int64(3)).Return(nil)
	f.rentals.On("Reject", mock.Anything, []int64{21}, "taken").Return(rentalRepo.ErrStatusChanged)

	_, err := f.uc.Execute(context.Background(), &Request{
		RentalID: 1, AdminID: 99, Action: "reject_conflicts", RejectionReason: "taken",
	})
	assert.ErrorIs(t, err, ErrConflictsChanged)
	f.rentals.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
}

func TestExecute_NotPending(t *testing.T) {
	f := newFixture()
	f.rentals.On("GetByID", mock.Anything, int64(1)).Return(rentalWithStatus(domain.RentalActive), nil)

	_, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, AdminID: 99, Action: "confirm"})
	assert.ErrorIs(t, err, ErrRentalNotPending)
}

func TestExecute_UnknownAction(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), &Request{RentalID: 1, AdminID: 99, Action: "cancel"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLockOrder(t *testing.T) {
	assert.Equal(t, []int64{3}, lockOrder(3, nil))
	assert.Equal(t, []int64{3, 4}, lockOrder(3, ptr.Ptr(int64(4))))
	assert.Equal(t, []int64{2, 3}, lockOrder(3, ptr.Ptr(int64(2))))
}
