// Package availability answers one question: does a room still have a
// free unit for a date range? Two bookings overlap iff
// existing.checkIn < newCheckOut AND existing.checkOut > newCheckIn —
// half-open intervals, so a checkout and a check-in on the same day
// do not collide.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"hotelbooking/internal/domain"
)

var ErrNotAvailable = errors.New("room not available for the requested dates")

// OverlapRepository counts stored bookings holding inventory over a
// range. The count is recomputed from storage on every call, never
// cached.
type OverlapRepository interface {
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus) (int64, error)
}

// Checker decides whether a create may proceed. pendingHolds is the
// number of in-flight creates for the same room (the caller's own
// hold included) that have passed the check but not yet inserted.
type Checker interface {
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error)
	Check(ctx context.Context, room *domain.Room, checkIn, checkOut time.Time, pendingHolds int64) error
}

// BestEffortChecker is the optimistic check-then-act policy: the
// window between this check and the insert is a documented, narrow
// race accepted by the original lifecycle design.
type BestEffortChecker struct {
	repo OverlapRepository
}

func NewBestEffortChecker(repo OverlapRepository) *BestEffortChecker {
	return &BestEffortChecker{repo: repo}
}

func (c *BestEffortChecker) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int64, error) {
	return c.repo.CountOverlapping(ctx, roomID, checkIn, checkOut, domain.HoldingStatuses())
}

func (c *BestEffortChecker) Check(ctx context.Context, room *domain.Room, checkIn, checkOut time.Time, pendingHolds int64) error {
	count, err := c.CountOverlapping(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return fmt.Errorf("count overlapping bookings: %w", err)
	}
	if pendingHolds < 1 {
		pendingHolds = 1
	}
	if count+pendingHolds > int64(room.Quantity) {
		return ErrNotAvailable
	}
	return nil
}

// StrictChecker runs the same pre-check but the real guarantee comes
// from a storage-level capacity constraint: the insert fails with a
// constraint violation when a concurrent request took the last unit,
// and IsCapacityConflict translates that into ErrNotAvailable.
type StrictChecker struct {
	*BestEffortChecker
}

func NewStrictChecker(repo OverlapRepository) *StrictChecker {
	return &StrictChecker{BestEffortChecker: NewBestEffortChecker(repo)}
}

// IsCapacityConflict reports whether an insert error is the storage
// layer refusing a double-booking (unique or exclusion constraint).
func IsCapacityConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation, 23P01 exclusion_violation
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}
	return false
}
