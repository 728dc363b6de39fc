package booking

type CreateBookingInput struct {
	RoomID   int64  `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Adults   int    `json:"adults" binding:"required,gt=0"`
	Children int    `json:"children" binding:"gte=0"`
}

type DepositProofInput struct {
	ProofURL string `json:"proof_url" binding:"required"`
}

type AddServiceInput struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

type CheckoutInput struct {
	// Strategy defaults to use_bonus.
	Strategy string `json:"strategy"`
}

type CancelInput struct {
	Reason string `json:"reason"`
}
