package pricing

import (
	"context"

	"hotelbooking/internal/domain"
)

// RuleRepository yields the active pricing rules targeting a room.
type RuleRepository interface {
	ActiveRulesForRoom(ctx context.Context, roomID int64) ([]domain.PricingRule, error)
}
