package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTTTL       = "24h"
	defaultDepositMode  = "percentage"
	defaultDepositValue = "30"
	defaultHoldTTL      = "2m"
	defaultPendingTTL   = "48h"
	defaultAvailability = "best_effort"
	defaultListenAddr   = ":8080"
)

// DepositMode selects how the upfront deposit is computed from the
// booking total.
type DepositMode string

const (
	DepositPercentage DepositMode = "percentage"
	DepositFixed      DepositMode = "fixed"
)

type Runtime struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// DepositValue is a percent for DepositPercentage, a flat amount
	// for DepositFixed; either way the charge is capped at the total.
	DepositMode  DepositMode
	DepositValue int64

	// "best_effort" or "strict" availability policy.
	AvailabilityPolicy string

	// Deposit promotion: deposits of at least BonusMinDeposit earn
	// BonusPercent extra on the bonus balance, capped by BonusMax.
	// BonusPercent zero disables the promotion.
	BonusPercent    int64
	BonusMinDeposit int64
	BonusMax        int64

	// HoldTTL bounds the in-process hold taken between the
	// availability check and the insert.
	HoldTTL time.Duration
	// PendingTTL is how long an unpaid pending_deposit booking may
	// linger before the sweeper cancels it.
	PendingTTL time.Duration
}

func Load() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	mode := strings.ToLower(getEnv("DEPOSIT_MODE", defaultDepositMode))
	switch DepositMode(mode) {
	case DepositPercentage, DepositFixed:
		cfg.DepositMode = DepositMode(mode)
	default:
		return nil, fmt.Errorf("DEPOSIT_MODE must be 'percentage' or 'fixed', got %q", mode)
	}

	cfg.DepositValue, err = parseInt64Env("DEPOSIT_VALUE", defaultDepositValue)
	if err != nil {
		return nil, err
	}

	cfg.BonusPercent, err = parseInt64Env("DEPOSIT_BONUS_PERCENT", "0")
	if err != nil {
		return nil, err
	}
	cfg.BonusMinDeposit, err = parseInt64Env("DEPOSIT_BONUS_MIN", "0")
	if err != nil {
		return nil, err
	}
	cfg.BonusMax, err = parseInt64Env("DEPOSIT_BONUS_MAX", "0")
	if err != nil {
		return nil, err
	}

	cfg.AvailabilityPolicy = strings.ToLower(getEnv("AVAILABILITY_POLICY", defaultAvailability))
	if cfg.AvailabilityPolicy != "best_effort" && cfg.AvailabilityPolicy != "strict" {
		return nil, fmt.Errorf("AVAILABILITY_POLICY must be 'best_effort' or 'strict', got %q", cfg.AvailabilityPolicy)
	}

	cfg.HoldTTL, err = parseDurationEnv("HOLD_TTL", defaultHoldTTL)
	if err != nil {
		return nil, err
	}
	cfg.PendingTTL, err = parseDurationEnv("PENDING_BOOKING_TTL", defaultPendingTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if cfg.AppEnv != "dev" && cfg.JWTSecret == defaultJWTSecret {
		log.Printf("WARNING: JWT_SECRET is the default value in env %s", cfg.AppEnv)
	}

	return cfg, nil
}

func validate(cfg *Runtime) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.DepositValue < 0 {
		return fmt.Errorf("DEPOSIT_VALUE must be >= 0")
	}
	if cfg.DepositMode == DepositPercentage && cfg.DepositValue > 100 {
		return fmt.Errorf("DEPOSIT_VALUE must be <= 100 for percentage mode")
	}
	if cfg.BonusPercent < 0 || cfg.BonusMinDeposit < 0 || cfg.BonusMax < 0 {
		return fmt.Errorf("deposit bonus settings must be >= 0")
	}
	if cfg.HoldTTL <= 0 {
		return fmt.Errorf("HOLD_TTL must be > 0")
	}
	if cfg.PendingTTL <= 0 {
		return fmt.Errorf("PENDING_BOOKING_TTL must be > 0")
	}
	return nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", name, raw, err)
	}
	return d, nil
}

func parseInt64Env(name, def string) (int64, error) {
	raw := getEnv(name, def)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q: %w", name, raw, err)
	}
	return n, nil
}
