package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name      string
		amountDue int64
		wallet    int64
		bonus     int64
		strategy  Strategy
		want      Allocation
	}{
		{
			name:      "bonus first then wallet",
			amountDue: 500_000,
			wallet:    400_000,
			bonus:     200_000,
			strategy:  StrategyUseBonus,
			want:      Allocation{FromWallet: 300_000, FromBonus: 200_000, Shortfall: 0},
		},
		{
			name:      "bonus alone covers everything",
			amountDue: 150_000,
			wallet:    400_000,
			bonus:     200_000,
			strategy:  StrategyUseBonus,
			want:      Allocation{FromWallet: 0, FromBonus: 150_000, Shortfall: 0},
		},
		{
			name:      "main only ignores bonus",
			amountDue: 500_000,
			wallet:    300_000,
			bonus:     999_999,
			strategy:  StrategyMainOnly,
			want:      Allocation{FromWallet: 300_000, FromBonus: 0, Shortfall: 200_000},
		},
		{
			name:      "shortfall across both balances",
			amountDue: 1_000_000,
			wallet:    300_000,
			bonus:     100_000,
			strategy:  StrategyUseBonus,
			want:      Allocation{FromWallet: 300_000, FromBonus: 100_000, Shortfall: 600_000},
		},
		{
			name:      "zero due",
			amountDue: 0,
			wallet:    300_000,
			bonus:     100_000,
			strategy:  StrategyUseBonus,
			want:      Allocation{},
		},
		{
			name:      "negative due treated as settled",
			amountDue: -50,
			wallet:    300_000,
			bonus:     0,
			strategy:  StrategyMainOnly,
			want:      Allocation{},
		},
		{
			name:      "negative balances clamp to zero",
			amountDue: 100,
			wallet:    -10,
			bonus:     -10,
			strategy:  StrategyUseBonus,
			want:      Allocation{Shortfall: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.amountDue, tt.wallet, tt.bonus, tt.strategy)
			assert.Equal(t, tt.want, got)
			if tt.amountDue > 0 {
				assert.Equal(t, tt.amountDue, got.Total()+got.Shortfall)
			}
		})
	}
}

func TestStrategyValid(t *testing.T) {
	assert.True(t, StrategyUseBonus.Valid())
	assert.True(t, StrategyMainOnly.Valid())
	assert.False(t, Strategy("use_credit_card").Valid())
	assert.False(t, Strategy("").Valid())
}
