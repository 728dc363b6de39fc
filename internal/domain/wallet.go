package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionPayment    TransactionType = "payment"
	TransactionRefund     TransactionType = "refund"
	TransactionBonus      TransactionType = "bonus"
)

// Credit reports whether the type moves money into the wallet side.
func (t TransactionType) Credit() bool {
	switch t {
	case TransactionDeposit, TransactionRefund, TransactionBonus:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
)

type ReferenceType string

const (
	ReferenceBooking           ReferenceType = "booking"
	ReferenceDepositRequest    ReferenceType = "deposit_request"
	ReferenceWithdrawalRequest ReferenceType = "withdrawal_request"
)

// WalletTransaction is one append-only ledger row. Amount is the main
// balance movement, BonusAmount the bonus balance movement; both are
// non-negative with direction implied by Type. Rows are never edited
// after creation except the pending->completed status flip used by
// the withdrawal approval flow.
type WalletTransaction struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID int64     `json:"user_id" gorm:"not null;index"`

	Type        TransactionType `json:"type" gorm:"type:varchar(16);not null;index;check:type IN ('deposit','withdrawal','payment','refund','bonus')"`
	Amount      int64           `json:"amount" gorm:"not null"`
	BonusAmount int64           `json:"bonus_amount" gorm:"not null;default:0"`

	BalanceBefore      int64 `json:"balance_before" gorm:"not null"`
	BalanceAfter       int64 `json:"balance_after" gorm:"not null"`
	BonusBalanceBefore int64 `json:"bonus_balance_before" gorm:"not null"`
	BonusBalanceAfter  int64 `json:"bonus_balance_after" gorm:"not null"`

	Description   string        `json:"description,omitempty" gorm:"type:text"`
	ReferenceType ReferenceType `json:"reference_type,omitempty" gorm:"type:varchar(32)"`
	ReferenceID   int64         `json:"reference_id,omitempty"`

	Status    TransactionStatus `json:"status" gorm:"type:varchar(16);not null;default:completed"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime;index"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

func (t *WalletTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type RequestStatus string

const (
	RequestPending             RequestStatus = "pending"
	RequestApproved            RequestStatus = "approved"
	RequestRejected            RequestStatus = "rejected"
	RequestPendingConfirmation RequestStatus = "pending_confirmation"
	RequestCompleted           RequestStatus = "completed"
)

type DepositRequest struct {
	ID       int64         `json:"id" gorm:"primaryKey"`
	UserID   int64         `json:"user_id" gorm:"not null;index"`
	Amount   int64         `json:"amount" gorm:"not null"`
	ProofURL string        `json:"proof_url,omitempty" gorm:"type:text"`
	Status   RequestStatus `json:"status" gorm:"type:varchar(32);not null;index"`

	ReviewedBy *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Note       string     `json:"note,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WithdrawalRequest struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	UserID      int64  `json:"user_id" gorm:"not null;index"`
	Amount      int64  `json:"amount" gorm:"not null"`
	BankAccount string `json:"bank_account,omitempty" gorm:"type:varchar(64)"`

	// Admin-initiated withdrawals require the account holder's signed
	// confirmation before they complete.
	AdminInitiated bool          `json:"admin_initiated" gorm:"not null;default:false"`
	Status         RequestStatus `json:"status" gorm:"type:varchar(32);not null;index"`

	TransactionID *uuid.UUID `json:"transaction_id,omitempty" gorm:"type:uuid"`

	ReviewedBy *int64     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	Note       string     `json:"note,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
