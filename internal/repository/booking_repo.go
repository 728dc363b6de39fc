package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithTx returns a copy bound to an open transaction so state changes
// commit together with the caller's writes.
func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Services").
		First(&b, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// LockByID reads the booking under FOR UPDATE. Call inside a
// transaction only.
func (r *BookingRepository) LockByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Preload("Services").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	tx := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at asc").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// CountOverlapping counts bookings of the room whose stay intersects
// the half-open [checkIn, checkOut) window. A stay ending on checkIn
// or starting on checkOut does not collide.
func (r *BookingRepository) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, statuses []domain.BookingStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID, statuses, checkOut, checkIn).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// UpdateFromStatus applies updates only if the booking still holds the
// expected status. Returns false when another writer got there first.
func (r *BookingRepository) UpdateFromStatus(ctx context.Context, id int64, from domain.BookingStatus, updates map[string]any) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// AddServiceItem appends a snapshot row and re-derives the booking's
// service and estimated totals from the stored items.
func (r *BookingRepository) AddServiceItem(ctx context.Context, item *domain.BookingServiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		var serviceTotal int64
		if err := tx.Model(&domain.BookingServiceItem{}).
			Where("booking_id = ?", item.BookingID).
			Select("COALESCE(SUM(quantity * unit_price), 0)").
			Scan(&serviceTotal).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Booking{}).
			Where("id = ?", item.BookingID).
			Updates(map[string]any{
				"service_price":   serviceTotal,
				"estimated_price": gorm.Expr("room_price + ?", serviceTotal),
			}).Error
	})
}

// CancelStalePending cancels pending_deposit bookings created before
// the cutoff. Returns how many were swept.
func (r *BookingRepository) CancelStalePending(ctx context.Context, cutoff, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ? AND created_at < ?", domain.BookingPendingDeposit, cutoff).
		Updates(map[string]any{
			"status":              domain.BookingCancelled,
			"cancelled_at":        now,
			"cancellation_reason": "deposit deadline expired",
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
