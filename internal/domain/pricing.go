package domain

import "time"

type PricingRuleKind string

const (
	RuleDateRange PricingRuleKind = "date_range"
	RuleWeekend   PricingRuleKind = "weekend"
)

type PriceModifierKind string

const (
	ModifierPercentage PriceModifierKind = "percentage"
	ModifierFixed      PriceModifierKind = "fixed"
)

// PricingRule overrides a room's base nightly rate. date_range rules
// outrank weekend rules; within a tier the oldest rule wins, so
// overlapping promotions resolve deterministically.
type PricingRule struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`

	RoomIDs []int64 `json:"room_ids" gorm:"serializer:json;not null"`

	Kind PricingRuleKind `json:"kind" gorm:"type:varchar(16);not null;index"`

	// Inclusive calendar window, date_range rules only.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	ModifierKind  PriceModifierKind `json:"modifier_kind" gorm:"type:varchar(16);not null"`
	ModifierValue int64             `json:"modifier_value" gorm:"not null"`

	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppliesToRoom reports whether the rule targets the given room.
func (r *PricingRule) AppliesToRoom(roomID int64) bool {
	for _, id := range r.RoomIDs {
		if id == roomID {
			return true
		}
	}
	return false
}

// CoversDate reports whether a date_range rule's inclusive window
// contains the given calendar date.
func (r *PricingRule) CoversDate(date time.Time) bool {
	if r.Kind != RuleDateRange || r.StartDate == nil || r.EndDate == nil {
		return false
	}
	d := DateOnly(date)
	return !d.Before(DateOnly(*r.StartDate)) && !d.After(DateOnly(*r.EndDate))
}
