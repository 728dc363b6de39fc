package wallet

type DepositRequestInput struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	ProofURL string `json:"proof_url"`
}

type WithdrawalRequestInput struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	BankAccount string `json:"bank_account" binding:"required"`
}

type AdminWithdrawalInput struct {
	UserID      int64  `json:"user_id" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	BankAccount string `json:"bank_account"`
}

type RejectInput struct {
	Note string `json:"note"`
}
