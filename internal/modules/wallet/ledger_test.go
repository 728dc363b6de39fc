package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"hotelbooking/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:wallet_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.WalletTransaction{},
		&domain.DepositRequest{},
		&domain.WithdrawalRequest{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, wallet, bonus int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:         fmt.Sprintf("u%d-%s@test.local", wallet+bonus, t.Name()),
		Role:          domain.RoleGuest,
		WalletBalance: wallet,
		BonusBalance:  bonus,
		IsActive:      true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func TestApplyDepositCreditsWallet(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 0, 0)

	txn, err := ledger.Apply(context.Background(), ApplyInput{
		UserID: u.ID,
		Type:   domain.TransactionDeposit,
		Amount: 250_000,
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if txn.BalanceBefore != 0 || txn.BalanceAfter != 250_000 {
		t.Fatalf("unexpected balance pair: before=%d after=%d", txn.BalanceBefore, txn.BalanceAfter)
	}
	if txn.Status != domain.TransactionCompleted {
		t.Fatalf("expected completed status, got %s", txn.Status)
	}

	wallet, bonus, err := ledger.GetBalance(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetBalance returned error: %v", err)
	}
	if wallet != 250_000 || bonus != 0 {
		t.Fatalf("expected 250000/0, got %d/%d", wallet, bonus)
	}
}

func TestApplyCombinedPaymentDebitsBothBalances(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 300_000, 200_000)

	txn, err := ledger.Apply(context.Background(), ApplyInput{
		UserID:      u.ID,
		Type:        domain.TransactionPayment,
		Amount:      300_000,
		BonusAmount: 200_000,
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if txn.BalanceAfter != 0 || txn.BonusBalanceAfter != 0 {
		t.Fatalf("expected both balances drained, got %d/%d", txn.BalanceAfter, txn.BonusBalanceAfter)
	}
	if txn.BalanceBefore-txn.BalanceAfter != txn.Amount {
		t.Fatalf("wallet delta %d does not match amount %d", txn.BalanceBefore-txn.BalanceAfter, txn.Amount)
	}
	if txn.BonusBalanceBefore-txn.BonusBalanceAfter != txn.BonusAmount {
		t.Fatalf("bonus delta does not match bonus amount")
	}
}

func TestApplyRejectsOverdraft(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 100, 0)

	_, err := ledger.Apply(context.Background(), ApplyInput{
		UserID: u.ID,
		Type:   domain.TransactionPayment,
		Amount: 101,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// nothing was written
	wallet, _, _ := ledger.GetBalance(context.Background(), u.ID)
	if wallet != 100 {
		t.Fatalf("balance changed on a rejected debit: %d", wallet)
	}
	var count int64
	db.Model(&domain.WalletTransaction{}).Where("user_id = ?", u.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected no transaction rows, got %d", count)
	}
}

func TestApplyRejectsBonusOverdraft(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 1_000_000, 50)

	_, err := ledger.Apply(context.Background(), ApplyInput{
		UserID:      u.ID,
		Type:        domain.TransactionPayment,
		Amount:      100,
		BonusAmount: 51,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestApplyRejectsInvalidAmounts(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 100, 100)

	for _, in := range []ApplyInput{
		{UserID: u.ID, Type: domain.TransactionDeposit, Amount: 0},
		{UserID: u.ID, Type: domain.TransactionDeposit, Amount: -5},
		{UserID: u.ID, Type: domain.TransactionBonus, BonusAmount: -1},
	} {
		if _, err := ledger.Apply(context.Background(), in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %+v, got %v", in, err)
		}
	}
}

func TestApplyUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)

	_, err := ledger.Apply(context.Background(), ApplyInput{
		UserID: 9999,
		Type:   domain.TransactionDeposit,
		Amount: 10,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// The ledger must be able to rebuild the cached balances from its
// history alone.
func TestRebuildBalanceMatchesCachedAggregates(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 0, 0)
	ctx := context.Background()

	steps := []ApplyInput{
		{UserID: u.ID, Type: domain.TransactionDeposit, Amount: 500_000},
		{UserID: u.ID, Type: domain.TransactionBonus, BonusAmount: 50_000},
		{UserID: u.ID, Type: domain.TransactionPayment, Amount: 120_000, BonusAmount: 30_000},
		{UserID: u.ID, Type: domain.TransactionWithdrawal, Amount: 100_000},
		{UserID: u.ID, Type: domain.TransactionRefund, Amount: 100_000},
	}
	for _, in := range steps {
		if _, err := ledger.Apply(ctx, in); err != nil {
			t.Fatalf("Apply %+v returned error: %v", in, err)
		}
	}

	cachedWallet, cachedBonus, err := ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetBalance returned error: %v", err)
	}
	rebuiltWallet, rebuiltBonus, err := ledger.RebuildBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("RebuildBalance returned error: %v", err)
	}

	if cachedWallet != rebuiltWallet || cachedBonus != rebuiltBonus {
		t.Fatalf("drift: cached %d/%d vs rebuilt %d/%d", cachedWallet, cachedBonus, rebuiltWallet, rebuiltBonus)
	}
	if cachedWallet != 380_000 || cachedBonus != 20_000 {
		t.Fatalf("unexpected final balances %d/%d", cachedWallet, cachedBonus)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db)
	u := createUser(t, db, 0, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := ledger.Apply(ctx, ApplyInput{UserID: u.ID, Type: domain.TransactionDeposit, Amount: int64(100 + i)}); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
	}

	txns, err := ledger.ListTransactions(ctx, u.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txns))
	}
	if txns[0].Amount != 102 {
		t.Fatalf("expected newest first, got amount %d", txns[0].Amount)
	}
}
