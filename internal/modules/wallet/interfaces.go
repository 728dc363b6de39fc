package wallet

import (
	"context"
	"time"
)

// Promotion describes bonus funds granted on a deposit. Either
// BonusPercent or BonusAmount is set; MaxBonus caps the grant when
// positive.
type Promotion struct {
	BonusPercent int64
	BonusAmount  int64
	MaxBonus     int64
}

// PromotionFinder is the read-only promotion collaborator consulted
// at deposit-approval time. A nil promotion means no promotion
// applies.
type PromotionFinder interface {
	FindApplicablePromotion(ctx context.Context, amount int64, now time.Time) (*Promotion, error)
}

// StaticPromotion grants the same bonus to every deposit at or above
// MinDeposit. The zero value never matches.
type StaticPromotion struct {
	MinDeposit int64
	Promo      Promotion
}

func (s StaticPromotion) FindApplicablePromotion(_ context.Context, amount int64, _ time.Time) (*Promotion, error) {
	if amount < s.MinDeposit || s.Promo.BonusFor(amount) == 0 {
		return nil, nil
	}
	p := s.Promo
	return &p, nil
}

// BonusFor computes the bonus granted for a deposit of amount.
func (p *Promotion) BonusFor(amount int64) int64 {
	if p == nil {
		return 0
	}
	bonus := p.BonusAmount
	if bonus == 0 && p.BonusPercent > 0 {
		bonus = amount * p.BonusPercent / 100
	}
	if p.MaxBonus > 0 && bonus > p.MaxBonus {
		bonus = p.MaxBonus
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}
