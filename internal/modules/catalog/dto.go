package catalog

type CreatePricingRuleInput struct {
	Name          string  `json:"name" binding:"required"`
	RoomIDs       []int64 `json:"room_ids" binding:"required,min=1"`
	Kind          string  `json:"kind" binding:"required"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	ModifierKind  string  `json:"modifier_kind" binding:"required"`
	ModifierValue int64   `json:"modifier_value"`
}
