package pricing

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hotelbooking/internal/domain"
)

const BaseRateLabel = "base rate"

// Quote is the resolved rate for a single night.
type Quote struct {
	Date  time.Time `json:"date"`
	Price int64     `json:"price"`
	Label string    `json:"label"`
	// RuleID is nil when the base rate applied.
	RuleID *int64 `json:"rule_id,omitempty"`
}

type Breakdown struct {
	Nights []Quote `json:"nights"`
	Total  int64   `json:"total"`
}

type Resolver struct {
	rules RuleRepository
}

func NewResolver(rules RuleRepository) *Resolver {
	return &Resolver{rules: rules}
}

// ResolvePrice computes the effective nightly rate for a room on one
// calendar date. date_range rules outrank weekend rules; within a
// tier the earliest-created rule wins.
func (r *Resolver) ResolvePrice(ctx context.Context, roomID int64, date time.Time, basePrice int64) (Quote, error) {
	rules, err := r.rules.ActiveRulesForRoom(ctx, roomID)
	if err != nil {
		return Quote{}, err
	}
	return resolveNight(rules, date, basePrice), nil
}

// PriceBreakdown prices every night in [checkIn, checkOut) — a stay
// of N nights prices exactly N nights — and sums the total.
func (r *Resolver) PriceBreakdown(ctx context.Context, roomID int64, checkIn, checkOut time.Time, basePrice int64) (*Breakdown, error) {
	in := domain.DateOnly(checkIn)
	out := domain.DateOnly(checkOut)
	if !out.After(in) {
		return nil, ErrInvalidRange
	}

	rules, err := r.rules.ActiveRulesForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var b Breakdown
	for night := in; night.Before(out); night = night.AddDate(0, 0, 1) {
		q := resolveNight(rules, night, basePrice)
		b.Nights = append(b.Nights, q)
		b.Total += q.Price
	}
	return &b, nil
}

// resolveNight is pure: same rules, date and base always produce the
// same quote.
func resolveNight(rules []domain.PricingRule, date time.Time, basePrice int64) Quote {
	d := domain.DateOnly(date)

	if rule := oldestMatch(rules, func(r *domain.PricingRule) bool {
		return r.Kind == domain.RuleDateRange && r.CoversDate(d)
	}); rule != nil {
		return quoteFromRule(rule, d, basePrice)
	}

	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		if rule := oldestMatch(rules, func(r *domain.PricingRule) bool {
			return r.Kind == domain.RuleWeekend
		}); rule != nil {
			return quoteFromRule(rule, d, basePrice)
		}
	}

	return Quote{Date: d, Price: basePrice, Label: BaseRateLabel}
}

func oldestMatch(rules []domain.PricingRule, match func(*domain.PricingRule) bool) *domain.PricingRule {
	var candidates []*domain.PricingRule
	for i := range rules {
		if match(&rules[i]) {
			candidates = append(candidates, &rules[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	// oldest rule wins; id breaks creation-time ties
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0]
}

func quoteFromRule(rule *domain.PricingRule, date time.Time, basePrice int64) Quote {
	id := rule.ID
	label := rule.Name
	if label == "" {
		label = string(rule.Kind)
	}
	return Quote{
		Date:   date,
		Price:  applyModifier(basePrice, rule.ModifierKind, rule.ModifierValue),
		Label:  label,
		RuleID: &id,
	}
}

// applyModifier rounds to the nearest whole currency unit; the domain
// has no fractional minor units.
func applyModifier(basePrice int64, kind domain.PriceModifierKind, value int64) int64 {
	switch kind {
	case domain.ModifierPercentage:
		price := decimal.NewFromInt(basePrice).
			Mul(decimal.NewFromInt(100 + value)).
			Div(decimal.NewFromInt(100)).
			Round(0)
		return price.IntPart()
	case domain.ModifierFixed:
		return basePrice + value
	}
	return basePrice
}
