package wallet

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
)

// Ledger is the only writer of user balances. Every balance change is
// one atomic unit: lock the user row, move the money, append exactly
// one transaction row. Balances are cached aggregates; the
// transaction log is the source of truth and can rebuild them from
// zero.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// ApplyInput describes one balance movement. Amount moves the main
// balance, BonusAmount the bonus balance; both are non-negative and
// the direction comes from Type. A combined checkout debit carries
// both.
type ApplyInput struct {
	UserID      int64
	Type        domain.TransactionType
	Amount      int64
	BonusAmount int64
	Description string

	ReferenceType domain.ReferenceType
	ReferenceID   int64

	// Status defaults to completed. Withdrawal approvals pass
	// pending; completion later flips just that field.
	Status domain.TransactionStatus
}

// Apply runs the movement in its own transaction.
func (l *Ledger) Apply(ctx context.Context, in ApplyInput) (*domain.WalletTransaction, error) {
	var txn *domain.WalletTransaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = l.ApplyIn(tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ApplyIn runs the movement inside an already-open transaction so a
// caller can commit it together with its own writes (checkout settles
// money and booking state in one boundary).
func (l *Ledger) ApplyIn(tx *gorm.DB, in ApplyInput) (*domain.WalletTransaction, error) {
	if in.Amount < 0 || in.BonusAmount < 0 || in.Amount+in.BonusAmount == 0 {
		return nil, ErrInvalidAmount
	}
	if in.Status == "" {
		in.Status = domain.TransactionCompleted
	}

	var user domain.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", in.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	txn := &domain.WalletTransaction{
		UserID:             in.UserID,
		Type:               in.Type,
		Amount:             in.Amount,
		BonusAmount:        in.BonusAmount,
		BalanceBefore:      user.WalletBalance,
		BonusBalanceBefore: user.BonusBalance,
		Description:        in.Description,
		ReferenceType:      in.ReferenceType,
		ReferenceID:        in.ReferenceID,
		Status:             in.Status,
	}

	if in.Type.Credit() {
		user.WalletBalance += in.Amount
		user.BonusBalance += in.BonusAmount
	} else {
		// Debits are checked against the in-transaction balance, not
		// anything read earlier in the request.
		if user.WalletBalance < in.Amount || user.BonusBalance < in.BonusAmount {
			return nil, ErrInsufficientFunds
		}
		user.WalletBalance -= in.Amount
		user.BonusBalance -= in.BonusAmount
	}

	txn.BalanceAfter = user.WalletBalance
	txn.BonusBalanceAfter = user.BonusBalance

	if err := tx.Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"wallet_balance": user.WalletBalance,
		"bonus_balance":  user.BonusBalance,
	}).Error; err != nil {
		return nil, fmt.Errorf("update balances: %w", err)
	}
	if err := tx.Create(txn).Error; err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	return txn, nil
}

// GetBalance returns the cached balance pair.
func (l *Ledger) GetBalance(ctx context.Context, userID int64) (wallet int64, bonus int64, err error) {
	var user domain.User
	if err := l.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return user.WalletBalance, user.BonusBalance, nil
}

// ListTransactions returns the user's ledger history, newest first.
func (l *Ledger) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var txns []domain.WalletTransaction
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// RebuildBalance folds the full transaction history into the balance
// pair it implies. Used by reconciliation checks; the result must
// always equal the cached aggregates.
func (l *Ledger) RebuildBalance(ctx context.Context, userID int64) (wallet int64, bonus int64, err error) {
	var txns []domain.WalletTransaction
	if err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&txns).Error; err != nil {
		return 0, 0, err
	}
	for _, t := range txns {
		if t.Type.Credit() {
			wallet += t.Amount
			bonus += t.BonusAmount
		} else {
			wallet -= t.Amount
			bonus -= t.BonusAmount
		}
	}
	return wallet, bonus, nil
}
