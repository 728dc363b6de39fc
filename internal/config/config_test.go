package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DepositMode != DepositPercentage || cfg.DepositValue != 30 {
		t.Fatalf("unexpected deposit defaults: %s/%d", cfg.DepositMode, cfg.DepositValue)
	}
	if cfg.AvailabilityPolicy != "best_effort" {
		t.Fatalf("unexpected availability policy %q", cfg.AvailabilityPolicy)
	}
	if cfg.HoldTTL != 2*time.Minute || cfg.PendingTTL != 48*time.Hour {
		t.Fatalf("unexpected TTLs %s/%s", cfg.HoldTTL, cfg.PendingTTL)
	}
	if cfg.BonusPercent != 0 || cfg.BonusMinDeposit != 0 || cfg.BonusMax != 0 {
		t.Fatalf("promotion must be off by default: %d/%d/%d", cfg.BonusPercent, cfg.BonusMinDeposit, cfg.BonusMax)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown deposit mode", "DEPOSIT_MODE", "half"},
		{"negative deposit value", "DEPOSIT_VALUE", "-5"},
		{"percentage over 100", "DEPOSIT_VALUE", "150"},
		{"negative bonus percent", "DEPOSIT_BONUS_PERCENT", "-10"},
		{"negative bonus minimum", "DEPOSIT_BONUS_MIN", "-1"},
		{"negative bonus cap", "DEPOSIT_BONUS_MAX", "-1"},
		{"unknown availability policy", "AVAILABILITY_POLICY", "eventually"},
		{"zero hold ttl", "HOLD_TTL", "0s"},
		{"zero pending ttl", "PENDING_BOOKING_TTL", "0h"},
		{"garbage duration", "JWT_TTL", "soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoadBonusSettings(t *testing.T) {
	t.Setenv("DEPOSIT_BONUS_PERCENT", "10")
	t.Setenv("DEPOSIT_BONUS_MIN", "100000")
	t.Setenv("DEPOSIT_BONUS_MAX", "40000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BonusPercent != 10 || cfg.BonusMinDeposit != 100_000 || cfg.BonusMax != 40_000 {
		t.Fatalf("unexpected bonus settings: %d/%d/%d", cfg.BonusPercent, cfg.BonusMinDeposit, cfg.BonusMax)
	}
}
