package availability

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hotelbooking/internal/domain"
)

type MockOverlapRepository struct {
	mock.Mock
}

func (m *MockOverlapRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func testRange() (time.Time, time.Time) {
	return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
}

func TestCheckPassesWhenUnitsRemain(t *testing.T) {
	repo := new(MockOverlapRepository)
	repo.On("CountOverlapping", mock.Anything, int64(1), mock.Anything, mock.Anything, domain.HoldingStatuses()).
		Return(int64(2), nil)

	c := NewBestEffortChecker(repo)
	in, out := testRange()
	err := c.Check(context.Background(), &domain.Room{ID: 1, Quantity: 3}, in, out, 1)

	assert.NoError(t, err)
}

func TestCheckFailsWhenFull(t *testing.T) {
	repo := new(MockOverlapRepository)
	repo.On("CountOverlapping", mock.Anything, int64(1), mock.Anything, mock.Anything, domain.HoldingStatuses()).
		Return(int64(3), nil)

	c := NewBestEffortChecker(repo)
	in, out := testRange()
	err := c.Check(context.Background(), &domain.Room{ID: 1, Quantity: 3}, in, out, 1)

	assert.ErrorIs(t, err, ErrNotAvailable)
}

// Two concurrent creates both holding a slot must not both pass when
// only one unit remains.
func TestPendingHoldsCountAgainstQuantity(t *testing.T) {
	repo := new(MockOverlapRepository)
	repo.On("CountOverlapping", mock.Anything, int64(1), mock.Anything, mock.Anything, domain.HoldingStatuses()).
		Return(int64(2), nil)

	c := NewBestEffortChecker(repo)
	in, out := testRange()

	assert.NoError(t, c.Check(context.Background(), &domain.Room{ID: 1, Quantity: 3}, in, out, 1))
	assert.ErrorIs(t,
		c.Check(context.Background(), &domain.Room{ID: 1, Quantity: 3}, in, out, 2),
		ErrNotAvailable)
}

// The holding set must include every non-cancelled status, otherwise
// an in-flight booking becomes invisible and the room overbooks.
func TestHoldingStatusesExcludeOnlyCancelled(t *testing.T) {
	held := domain.HoldingStatuses()

	assert.NotContains(t, held, domain.BookingCancelled)
	assert.Contains(t, held, domain.BookingPendingDeposit)
	assert.Contains(t, held, domain.BookingAwaitingApproval)
	assert.Contains(t, held, domain.BookingConfirmed)
	assert.Contains(t, held, domain.BookingCompleted)
}

func TestIsCapacityConflict(t *testing.T) {
	assert.True(t, IsCapacityConflict(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsCapacityConflict(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsCapacityConflict(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsCapacityConflict(assert.AnError))
	assert.False(t, IsCapacityConflict(nil))
}
