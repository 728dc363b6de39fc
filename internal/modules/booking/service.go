package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotelbooking/internal/config"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/modules/payment"
	"hotelbooking/internal/modules/wallet"
	"hotelbooking/internal/pkg/expirable"
	"hotelbooking/internal/repository"
)

// DepositPolicy computes the upfront charge that moves a booking out
// of pending_deposit.
type DepositPolicy struct {
	Mode  config.DepositMode
	Value int64
}

// Due is capped at the total: a fixed deposit larger than a cheap stay
// never overcharges.
func (p DepositPolicy) Due(total int64) int64 {
	if total <= 0 {
		return 0
	}
	var due int64
	switch p.Mode {
	case config.DepositFixed:
		due = p.Value
	default:
		due = decimal.NewFromInt(total).
			Mul(decimal.NewFromInt(p.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
	}
	if due > total {
		due = total
	}
	if due < 0 {
		due = 0
	}
	return due
}

type Deps struct {
	DB       *gorm.DB
	Bookings *repository.BookingRepository
	Rooms    *repository.RoomRepository
	Services *repository.ServiceRepository
	Users    *repository.UserRepository
	Pricer   PriceQuoter
	Checker  availability.Checker
	Ledger   Ledger
	Holds    *expirable.Store
	Notify   NotificationSender
	Deposit  DepositPolicy
	HoldTTL  time.Duration
}

// Service drives the booking state machine. Every transition that
// moves money runs the ledger write and the compare-and-set status
// update inside one transaction.
type Service struct {
	db       *gorm.DB
	bookings *repository.BookingRepository
	rooms    *repository.RoomRepository
	services *repository.ServiceRepository
	users    *repository.UserRepository
	pricer   PriceQuoter
	checker  availability.Checker
	ledger   Ledger
	holds    *expirable.Store
	notify   NotificationSender
	deposit  DepositPolicy
	holdTTL  time.Duration
	now      func() time.Time
}

func NewService(d Deps) *Service {
	return &Service{
		db:       d.DB,
		bookings: d.Bookings,
		rooms:    d.Rooms,
		services: d.Services,
		users:    d.Users,
		pricer:   d.Pricer,
		checker:  d.Checker,
		ledger:   d.Ledger,
		holds:    d.Holds,
		notify:   d.Notify,
		deposit:  d.Deposit,
		holdTTL:  d.HoldTTL,
		now:      time.Now,
	}
}

type CreateParams struct {
	UserID   int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
	Children int
}

// Create quotes the stay, checks availability and inserts the booking
// in pending_deposit. A short-lived in-process hold covers the gap
// between the availability check and the insert; under the strict
// policy the storage constraint is the final arbiter and a capacity
// conflict on insert maps back to ErrNotAvailable.
func (s *Service) Create(ctx context.Context, p CreateParams) (*domain.Booking, error) {
	checkIn := domain.DateOnly(p.CheckIn)
	checkOut := domain.DateOnly(p.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	if checkIn.Before(domain.DateOnly(s.now())) {
		return nil, fmt.Errorf("%w: check-in date is in the past", ErrValidation)
	}
	if p.Adults <= 0 {
		return nil, fmt.Errorf("%w: at least one adult is required", ErrValidation)
	}

	room, err := s.rooms.GetByID(ctx, p.RoomID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !room.IsActive {
		return nil, ErrNotFound
	}
	if p.Adults > room.CapacityAdults || p.Children > room.CapacityChildren {
		return nil, ErrCapacity
	}

	key := holdKey(room.ID)
	pending := s.holds.Incr(key, s.holdTTL)
	defer s.holds.Decr(key)

	if err := s.checker.Check(ctx, room, checkIn, checkOut, pending); err != nil {
		return nil, err
	}

	quote, err := s.pricer.PriceBreakdown(ctx, room.ID, checkIn, checkOut, room.BasePrice)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:         p.UserID,
		RoomID:         room.ID,
		HotelID:        room.HotelID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Adults:         p.Adults,
		Children:       p.Children,
		RoomPrice:      quote.Total,
		TotalPrice:     quote.Total,
		EstimatedPrice: quote.Total,
		Status:         domain.BookingPendingDeposit,
		PaymentStatus:  domain.PaymentUnpaid,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if availability.IsCapacityConflict(err) {
			return nil, availability.ErrNotAvailable
		}
		return nil, err
	}

	s.send(ctx, b.UserID, "booking_created",
		fmt.Sprintf("Booking #%d created, deposit required to proceed", b.ID))
	return b, nil
}

// GetForUser hides other guests' bookings behind ErrNotFound instead
// of admitting they exist.
func (s *Service) GetForUser(ctx context.Context, id, userID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if role == domain.RoleGuest && b.UserID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// SubmitDepositProof records a bank-transfer receipt and parks the
// booking in awaiting_approval for admin review.
func (s *Service) SubmitDepositProof(ctx context.Context, id, userID int64, proofURL string) (*domain.Booking, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.UserID != userID {
			return ErrNotFound
		}
		if b.Status != domain.BookingPendingDeposit {
			return ErrInvalidState
		}
		return casUpdate(tx, id, domain.BookingPendingDeposit, map[string]any{
			"status":            domain.BookingAwaitingApproval,
			"deposit_proof_url": proofURL,
			"payment_method":    domain.PaymentMethodTransfer,
			"payment_status":    domain.PaymentPending,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// PayDepositFromWallet debits the deposit from the main balance and
// moves the booking to awaiting_approval in the same commit.
func (s *Service) PayDepositFromWallet(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.UserID != userID {
			return ErrNotFound
		}
		if b.Status != domain.BookingPendingDeposit {
			return ErrInvalidState
		}

		due := s.deposit.Due(b.TotalPrice)
		if due > 0 {
			if _, err := s.ledger.ApplyIn(tx, wallet.ApplyInput{
				UserID:        userID,
				Type:          domain.TransactionPayment,
				Amount:        due,
				Description:   fmt.Sprintf("deposit for booking #%d", b.ID),
				ReferenceType: domain.ReferenceBooking,
				ReferenceID:   b.ID,
			}); err != nil {
				return err
			}
		}

		return casUpdate(tx, id, domain.BookingPendingDeposit, map[string]any{
			"status":           domain.BookingAwaitingApproval,
			"payment_method":   domain.PaymentMethodWallet,
			"payment_status":   domain.PaymentPending,
			"paid_from_wallet": due,
		})
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, userID, "deposit_paid",
		fmt.Sprintf("Deposit for booking #%d received, awaiting approval", id))
	return s.bookings.GetByID(ctx, id)
}

// Approve confirms a booking whose deposit checks out.
func (s *Service) Approve(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	ok, err := s.bookings.UpdateFromStatus(ctx, id, domain.BookingAwaitingApproval, map[string]any{
		"status":         domain.BookingConfirmed,
		"payment_status": domain.PaymentPaid,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	s.send(ctx, b.UserID, "booking_confirmed",
		fmt.Sprintf("Booking #%d confirmed", id))
	return s.bookings.GetByID(ctx, id)
}

// Reject sends an awaiting_approval booking back to pending_deposit.
// A wallet-paid deposit is refunded in the same commit; a transfer
// proof is simply discarded.
func (s *Service) Reject(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	var guestID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.Status != domain.BookingAwaitingApproval {
			return ErrInvalidState
		}
		guestID = b.UserID

		if b.Paid() > 0 {
			if _, err := s.ledger.ApplyIn(tx, wallet.ApplyInput{
				UserID:        b.UserID,
				Type:          domain.TransactionRefund,
				Amount:        b.PaidFromWallet,
				BonusAmount:   b.PaidFromBonus,
				Description:   fmt.Sprintf("deposit refund for rejected booking #%d", b.ID),
				ReferenceType: domain.ReferenceBooking,
				ReferenceID:   b.ID,
			}); err != nil {
				return err
			}
		}

		return casUpdate(tx, id, domain.BookingAwaitingApproval, map[string]any{
			"status":            domain.BookingPendingDeposit,
			"payment_status":    domain.PaymentUnpaid,
			"payment_method":    "",
			"deposit_proof_url": "",
			"paid_from_wallet":  0,
			"paid_from_bonus":   0,
		})
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Deposit for booking #%d was rejected", id)
	if reason != "" {
		msg += ": " + reason
	}
	s.send(ctx, guestID, "deposit_rejected", msg)
	return s.bookings.GetByID(ctx, id)
}

// CheckIn stamps the physical arrival on a confirmed booking.
func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.Status != domain.BookingConfirmed || b.ActualCheckIn != nil {
			return ErrInvalidState
		}
		return tx.Model(&domain.Booking{}).
			Where("id = ?", id).
			Update("actual_check_in", s.now()).Error
	})
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// AddService snapshots a catalog extra onto a checked-in stay. The
// stored name and unit price are frozen; later catalog edits never
// change what this guest is billed.
func (s *Service) AddService(ctx context.Context, id int64, in AddServiceInput) (*domain.Booking, error) {
	svc, err := s.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown service", ErrValidation)
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("%w: service not offered for this stay", ErrValidation)
	}

	// Status check and insert share one locked transaction so a
	// concurrent checkout cannot attach the item after final_price
	// froze.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.Status != domain.BookingConfirmed || b.ActualCheckIn == nil {
			return ErrInvalidState
		}
		if svc.HotelID != b.HotelID {
			return fmt.Errorf("%w: service not offered for this stay", ErrValidation)
		}

		return s.bookings.WithTx(tx).AddServiceItem(ctx, &domain.BookingServiceItem{
			BookingID: b.ID,
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  in.Quantity,
			UnitPrice: svc.Price,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// Checkout settles the outstanding amount against the guest's wallet
// and completes the booking. A shortfall does not block checkout; the
// booking completes with payment_status pending and the unpaid rest is
// collected outside the system.
func (s *Service) Checkout(ctx context.Context, id int64, strategy payment.Strategy) (*domain.Booking, error) {
	if strategy == "" {
		strategy = payment.StrategyUseBonus
	}
	if !strategy.Valid() {
		return nil, fmt.Errorf("%w: unknown payment strategy %q", ErrValidation, strategy)
	}

	var guestID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if b.Status != domain.BookingConfirmed {
			return ErrInvalidState
		}
		guestID = b.UserID

		user, err := s.users.WithTx(tx).LockByID(ctx, b.UserID)
		if err != nil {
			return err
		}

		due := b.EstimatedPrice - b.Paid()
		alloc := payment.Allocate(due, user.WalletBalance, user.BonusBalance, strategy)
		if alloc.Total() > 0 {
			if _, err := s.ledger.ApplyIn(tx, wallet.ApplyInput{
				UserID:        b.UserID,
				Type:          domain.TransactionPayment,
				Amount:        alloc.FromWallet,
				BonusAmount:   alloc.FromBonus,
				Description:   fmt.Sprintf("checkout settlement for booking #%d", b.ID),
				ReferenceType: domain.ReferenceBooking,
				ReferenceID:   b.ID,
			}); err != nil {
				return err
			}
		}

		now := s.now()
		payStatus := domain.PaymentPaid
		if alloc.Shortfall > 0 {
			payStatus = domain.PaymentPending
		}
		return casUpdate(tx, id, domain.BookingConfirmed, map[string]any{
			"status":           domain.BookingCompleted,
			"final_price":      b.EstimatedPrice,
			"paid_from_wallet": b.PaidFromWallet + alloc.FromWallet,
			"paid_from_bonus":  b.PaidFromBonus + alloc.FromBonus,
			"payment_status":   payStatus,
			"invoice_number":   fmt.Sprintf("INV-%s-%d", now.UTC().Format("20060102150405"), b.ID),
			"actual_check_out": now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, guestID, "booking_completed",
		fmt.Sprintf("Booking #%d checked out, invoice issued", id))
	return s.bookings.GetByID(ctx, id)
}

// Cancel closes any non-terminal booking. Paid amounts come back as a
// compensating refund transaction, never by editing ledger history.
func (s *Service) Cancel(ctx context.Context, id, actorID int64, role domain.UserRole, reason string) (*domain.Booking, error) {
	var guestID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.WithTx(tx).LockByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		if role == domain.RoleGuest && b.UserID != actorID {
			return ErrNotFound
		}
		if b.Terminal() {
			return ErrInvalidState
		}
		guestID = b.UserID

		updates := map[string]any{
			"status":              domain.BookingCancelled,
			"cancelled_at":        s.now(),
			"cancellation_reason": reason,
		}
		if b.Paid() > 0 {
			if _, err := s.ledger.ApplyIn(tx, wallet.ApplyInput{
				UserID:        b.UserID,
				Type:          domain.TransactionRefund,
				Amount:        b.PaidFromWallet,
				BonusAmount:   b.PaidFromBonus,
				Description:   fmt.Sprintf("refund for cancelled booking #%d", b.ID),
				ReferenceType: domain.ReferenceBooking,
				ReferenceID:   b.ID,
			}); err != nil {
				return err
			}
			updates["payment_status"] = domain.PaymentRefunded
		}

		return casUpdate(tx, id, b.Status, updates)
	})
	if err != nil {
		return nil, err
	}

	s.send(ctx, guestID, "booking_cancelled",
		fmt.Sprintf("Booking #%d cancelled", id))
	return s.bookings.GetByID(ctx, id)
}

// SweepStalePending cancels pending_deposit bookings older than ttl.
// Run from the periodic sweeper.
func (s *Service) SweepStalePending(ctx context.Context, ttl time.Duration) (int64, error) {
	now := s.now()
	return s.bookings.CancelStalePending(ctx, now.Add(-ttl), now)
}

func (s *Service) send(ctx context.Context, userID int64, event, message string) {
	if s.notify == nil {
		return
	}
	s.notify.Send(ctx, userID, event, message)
}

func holdKey(roomID int64) string {
	return fmt.Sprintf("room-holds:%d", roomID)
}

// casUpdate applies updates only while the booking still holds the
// expected status; a lost race surfaces as ErrInvalidState.
func casUpdate(tx *gorm.DB, id int64, from domain.BookingStatus, updates map[string]any) error {
	res := tx.Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
