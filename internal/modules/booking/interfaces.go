package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/pricing"
	"hotelbooking/internal/modules/wallet"
)

// PriceQuoter freezes a stay's room total at creation time.
type PriceQuoter interface {
	PriceBreakdown(ctx context.Context, roomID int64, checkIn, checkOut time.Time, basePrice int64) (*pricing.Breakdown, error)
}

// Ledger moves wallet money inside the caller's transaction so a
// settlement and the matching status change commit or roll back
// together.
type Ledger interface {
	ApplyIn(tx *gorm.DB, in wallet.ApplyInput) (*domain.WalletTransaction, error)
}

// NotificationSender delivers lifecycle events to the guest. Failures
// are the sender's problem; bookings never roll back over a missed
// notification.
type NotificationSender interface {
	Send(ctx context.Context, userID int64, event, message string)
}
