// Package payment decides how an amount due is split between the two
// wallet balances. It is pure: no storage, no clocks, no locks — the
// ledger applies whatever split comes out of here.
package payment

type Strategy string

const (
	// StrategyUseBonus drains promotional funds first, then the main
	// balance.
	StrategyUseBonus Strategy = "use_bonus"
	// StrategyMainOnly never touches the bonus balance.
	StrategyMainOnly Strategy = "use_main_only"
)

func (s Strategy) Valid() bool {
	return s == StrategyUseBonus || s == StrategyMainOnly
}

type Allocation struct {
	FromWallet int64 `json:"from_wallet"`
	FromBonus  int64 `json:"from_bonus"`
	// Shortfall is the part of the amount due that neither balance
	// covers. Checkout tolerates it (partial settlement), plain
	// wallet payments treat it as a hard failure.
	Shortfall int64 `json:"shortfall"`
}

func (a Allocation) Total() int64 {
	return a.FromWallet + a.FromBonus
}

// Allocate splits amountDue across the bonus and main balances
// according to the strategy. Balances are never overdrawn; whatever
// remains uncovered is reported as shortfall.
func Allocate(amountDue, walletBalance, bonusBalance int64, strategy Strategy) Allocation {
	if amountDue <= 0 {
		return Allocation{}
	}
	if walletBalance < 0 {
		walletBalance = 0
	}
	if bonusBalance < 0 {
		bonusBalance = 0
	}

	var alloc Allocation
	remaining := amountDue

	if strategy == StrategyUseBonus {
		alloc.FromBonus = min64(remaining, bonusBalance)
		remaining -= alloc.FromBonus
	}

	alloc.FromWallet = min64(remaining, walletBalance)
	remaining -= alloc.FromWallet

	alloc.Shortfall = remaining
	return alloc
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
