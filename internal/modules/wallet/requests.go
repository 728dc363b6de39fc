package wallet

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelbooking/internal/domain"
)

// RequestService owns the deposit/withdrawal request workflows. Money
// only moves through the Ledger; this service drives the short state
// machines around it.
type RequestService struct {
	db     *gorm.DB
	ledger *Ledger
	promos PromotionFinder
	now    func() time.Time
}

func NewRequestService(db *gorm.DB, ledger *Ledger, promos PromotionFinder) *RequestService {
	return &RequestService{db: db, ledger: ledger, promos: promos, now: time.Now}
}

func (s *RequestService) CreateDepositRequest(ctx context.Context, userID, amount int64, proofURL string) (*domain.DepositRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	req := &domain.DepositRequest{
		UserID:   userID,
		Amount:   amount,
		ProofURL: proofURL,
		Status:   domain.RequestPending,
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveDeposit credits the wallet in a single step. When a
// promotion applies, a second bonus transaction is appended in the
// same boundary.
func (s *RequestService) ApproveDeposit(ctx context.Context, requestID, adminID int64) (*domain.DepositRequest, error) {
	var req domain.DepositRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrInvalidState
		}

		if _, err := s.ledger.ApplyIn(tx, ApplyInput{
			UserID:        req.UserID,
			Type:          domain.TransactionDeposit,
			Amount:        req.Amount,
			Description:   "deposit request approved",
			ReferenceType: domain.ReferenceDepositRequest,
			ReferenceID:   req.ID,
		}); err != nil {
			return err
		}

		if bonus := s.applicableBonus(ctx, req.Amount); bonus > 0 {
			if _, err := s.ledger.ApplyIn(tx, ApplyInput{
				UserID:        req.UserID,
				Type:          domain.TransactionBonus,
				BonusAmount:   bonus,
				Description:   "deposit promotion bonus",
				ReferenceType: domain.ReferenceDepositRequest,
				ReferenceID:   req.ID,
			}); err != nil {
				return err
			}
		}

		return s.reviewDeposit(tx, &req, domain.RequestApproved, adminID, "")
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) RejectDeposit(ctx context.Context, requestID, adminID int64, note string) (*domain.DepositRequest, error) {
	var req domain.DepositRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrInvalidState
		}
		return s.reviewDeposit(tx, &req, domain.RequestRejected, adminID, note)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) CreateWithdrawalRequest(ctx context.Context, userID, amount int64, bankAccount string, adminInitiated bool) (*domain.WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	// fail fast; the authoritative check happens under lock at approval
	balance, _, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientFunds
	}

	req := &domain.WithdrawalRequest{
		UserID:         userID,
		Amount:         amount,
		BankAccount:    bankAccount,
		AdminInitiated: adminInitiated,
		Status:         domain.RequestPending,
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveWithdrawal debits the wallet immediately and records a
// pending transaction. Completion later flips only that transaction's
// status — the money moved here. Admin-initiated requests park in
// pending_confirmation until the account holder signs off.
func (s *RequestService) ApproveWithdrawal(ctx context.Context, requestID, adminID int64) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrInvalidState
		}

		txn, err := s.ledger.ApplyIn(tx, ApplyInput{
			UserID:        req.UserID,
			Type:          domain.TransactionWithdrawal,
			Amount:        req.Amount,
			Description:   "withdrawal request approved",
			ReferenceType: domain.ReferenceWithdrawalRequest,
			ReferenceID:   req.ID,
			Status:        domain.TransactionPending,
		})
		if err != nil {
			return err
		}
		req.TransactionID = &txn.ID

		next := domain.RequestApproved
		if req.AdminInitiated {
			next = domain.RequestPendingConfirmation
		}
		return s.reviewWithdrawal(tx, &req, next, adminID, "")
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CompleteWithdrawal marks an approved payout as done. No money moves
// — only the pending ledger row flips to completed.
func (s *RequestService) CompleteWithdrawal(ctx context.Context, requestID, adminID int64) (*domain.WithdrawalRequest, error) {
	return s.finishWithdrawal(ctx, requestID, adminID, domain.RequestApproved)
}

// ConfirmWithdrawal is the account holder signing off an
// admin-initiated payout.
func (s *RequestService) ConfirmWithdrawal(ctx context.Context, requestID, userID int64) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		if req.UserID != userID {
			return ErrNotFound
		}
		if req.Status != domain.RequestPendingConfirmation {
			return ErrInvalidState
		}
		if err := s.completeTransaction(tx, &req); err != nil {
			return err
		}
		return s.reviewWithdrawal(tx, &req, domain.RequestCompleted, userID, "")
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RejectWithdrawal before approval simply closes the request. After
// approval it re-credits the wallet with a refund transaction, since
// the approval already debited it.
func (s *RequestService) RejectWithdrawal(ctx context.Context, requestID, adminID int64, note string) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		switch req.Status {
		case domain.RequestPending:
			// nothing was debited yet
		case domain.RequestApproved, domain.RequestPendingConfirmation:
			if _, err := s.ledger.ApplyIn(tx, ApplyInput{
				UserID:        req.UserID,
				Type:          domain.TransactionRefund,
				Amount:        req.Amount,
				Description:   "withdrawal rejected after approval",
				ReferenceType: domain.ReferenceWithdrawalRequest,
				ReferenceID:   req.ID,
			}); err != nil {
				return err
			}
			// the original debit stands, compensated by the refund
			if err := s.completeTransaction(tx, &req); err != nil {
				return err
			}
		default:
			return ErrInvalidState
		}
		return s.reviewWithdrawal(tx, &req, domain.RequestRejected, adminID, note)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) ListDepositRequests(ctx context.Context, status domain.RequestStatus) ([]domain.DepositRequest, error) {
	var reqs []domain.DepositRequest
	q := s.db.WithContext(ctx).Order("created_at asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequestService) ListWithdrawalRequests(ctx context.Context, status domain.RequestStatus) ([]domain.WithdrawalRequest, error) {
	var reqs []domain.WithdrawalRequest
	q := s.db.WithContext(ctx).Order("created_at asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequestService) finishWithdrawal(ctx context.Context, requestID, actorID int64, from domain.RequestStatus) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, &req, requestID); err != nil {
			return err
		}
		if req.Status != from {
			return ErrInvalidState
		}
		if err := s.completeTransaction(tx, &req); err != nil {
			return err
		}
		return s.reviewWithdrawal(tx, &req, domain.RequestCompleted, actorID, "")
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// completeTransaction flips the pending withdrawal transaction to
// completed — the single sanctioned mutation of a ledger row.
func (s *RequestService) completeTransaction(tx *gorm.DB, req *domain.WithdrawalRequest) error {
	if req.TransactionID == nil {
		return nil
	}
	return tx.Model(&domain.WalletTransaction{}).
		Where("id = ? AND status = ?", req.TransactionID, domain.TransactionPending).
		Update("status", domain.TransactionCompleted).Error
}

func (s *RequestService) applicableBonus(ctx context.Context, amount int64) int64 {
	if s.promos == nil {
		return 0
	}
	promo, err := s.promos.FindApplicablePromotion(ctx, amount, s.now())
	if err != nil {
		// promotions are best-effort; a broken collaborator must not
		// block a deposit
		return 0
	}
	return promo.BonusFor(amount)
}

func (s *RequestService) reviewDeposit(tx *gorm.DB, r *domain.DepositRequest, status domain.RequestStatus, reviewerID int64, note string) error {
	now := s.now()
	updates := map[string]any{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}
	if note != "" {
		updates["note"] = note
	}
	if err := tx.Model(r).Updates(updates).Error; err != nil {
		return err
	}
	r.Status = status
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if note != "" {
		r.Note = note
	}
	return nil
}

func (s *RequestService) reviewWithdrawal(tx *gorm.DB, r *domain.WithdrawalRequest, status domain.RequestStatus, reviewerID int64, note string) error {
	now := s.now()
	updates := map[string]any{
		"status":      status,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}
	if note != "" {
		updates["note"] = note
	}
	if r.TransactionID != nil {
		updates["transaction_id"] = *r.TransactionID
	}
	if err := tx.Model(r).Updates(updates).Error; err != nil {
		return err
	}
	r.Status = status
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if note != "" {
		r.Note = note
	}
	return nil
}

func lockRequest[T any](tx *gorm.DB, dst *T, id int64) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(dst, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}
