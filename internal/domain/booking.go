package domain

import "time"

type BookingStatus string

const (
	BookingPendingDeposit   BookingStatus = "pending_deposit"
	BookingAwaitingApproval BookingStatus = "awaiting_approval"
	BookingConfirmed        BookingStatus = "confirmed"
	BookingCompleted        BookingStatus = "completed"
	BookingCancelled        BookingStatus = "cancelled"
)

// HoldingStatuses are the statuses that keep a room unit occupied.
// Everything between creation and a terminal cancel counts, otherwise
// an in-flight booking would be invisible to the overlap check.
func HoldingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingPendingDeposit,
		BookingAwaitingApproval,
		BookingConfirmed,
		BookingCompleted,
	}
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodWallet   PaymentMethod = "wallet"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

type Booking struct {
	ID      int64 `json:"id" gorm:"primaryKey"`
	UserID  int64 `json:"user_id" gorm:"not null;index"`
	RoomID  int64 `json:"room_id" gorm:"not null;index"`
	HotelID int64 `json:"hotel_id" gorm:"not null;index"`

	// Date-only semantics, stored as UTC midnight.
	CheckIn  time.Time `json:"check_in" gorm:"not null;index"`
	CheckOut time.Time `json:"check_out" gorm:"not null;index"`

	Adults   int `json:"adults" gorm:"not null"`
	Children int `json:"children" gorm:"not null;default:0"`

	RoomPrice    int64 `json:"room_price" gorm:"not null"`
	ServicePrice int64 `json:"service_price" gorm:"not null;default:0"`
	// TotalPrice is the quote frozen at creation; EstimatedPrice moves
	// as services are attached, FinalPrice is frozen at checkout.
	TotalPrice     int64 `json:"total_price" gorm:"not null"`
	EstimatedPrice int64 `json:"estimated_price" gorm:"not null"`
	FinalPrice     int64 `json:"final_price" gorm:"not null;default:0"`

	PaidFromWallet int64 `json:"paid_from_wallet" gorm:"not null;default:0"`
	PaidFromBonus  int64 `json:"paid_from_bonus" gorm:"not null;default:0"`

	Status        BookingStatus `json:"status" gorm:"type:varchar(32);not null;index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty" gorm:"type:varchar(16)"`
	InvoiceNumber string        `json:"invoice_number,omitempty" gorm:"type:varchar(64);uniqueIndex:idx_bookings_invoice,where:invoice_number <> ''"`

	DepositProofURL string `json:"deposit_proof_url,omitempty" gorm:"type:text"`

	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`

	Services []BookingServiceItem `json:"services,omitempty" gorm:"foreignKey:BookingID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Nights is the number of billable nights, check-out night excluded.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func (b *Booking) Paid() int64 {
	return b.PaidFromWallet + b.PaidFromBonus
}

func (b *Booking) Terminal() bool {
	return b.Status == BookingCompleted || b.Status == BookingCancelled
}

// BookingServiceItem snapshots a catalog service at the moment it is
// attached to a stay. Later catalog price changes never touch it.
type BookingServiceItem struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	BookingID   int64      `json:"booking_id" gorm:"not null;index"`
	ServiceID   int64      `json:"service_id" gorm:"not null;index"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	UnitPrice   int64      `json:"unit_price" gorm:"not null"`
	AddedAt     time.Time  `json:"added_at" gorm:"autoCreateTime"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

func (BookingServiceItem) TableName() string {
	return "booking_service_items"
}

// DateOnly strips the time-of-day component; booking dates compare as
// plain calendar days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
