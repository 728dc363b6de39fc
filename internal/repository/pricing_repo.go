package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

type PricingRuleRepository struct {
	db *gorm.DB
}

func NewPricingRuleRepository(db *gorm.DB) *PricingRuleRepository {
	return &PricingRuleRepository{db: db}
}

// ActiveRulesForRoom loads all active rules and filters room targeting
// in Go: room_ids is a JSON column, so membership cannot be pushed
// into a portable WHERE clause. Ordered oldest first; the resolver
// relies on that for tie-breaking.
func (r *PricingRuleRepository) ActiveRulesForRoom(ctx context.Context, roomID int64) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc, id asc").
		Find(&rules)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := rules[:0]
	for _, rule := range rules {
		if rule.AppliesToRoom(roomID) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *PricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *PricingRuleRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.PricingRule{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PricingRuleRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	tx := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&rules)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rules, nil
}
