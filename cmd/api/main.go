package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/pricing"
	"hotelbooking/internal/modules/wallet"
	"hotelbooking/internal/notifier"
	"hotelbooking/internal/pkg/expirable"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ruleRepo := repository.NewPricingRuleRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	resolver := pricing.NewResolver(ruleRepo)
	pricingHandler := pricing.NewHandler(resolver, roomRepo)

	var checker availability.Checker
	if cfg.AvailabilityPolicy == "strict" {
		checker = availability.NewStrictChecker(bookingRepo)
	} else {
		checker = availability.NewBestEffortChecker(bookingRepo)
	}

	ledger := wallet.NewLedger(db)
	var promos wallet.PromotionFinder
	if cfg.BonusPercent > 0 {
		promos = wallet.StaticPromotion{
			MinDeposit: cfg.BonusMinDeposit,
			Promo:      wallet.Promotion{BonusPercent: cfg.BonusPercent, MaxBonus: cfg.BonusMax},
		}
	}
	requests := wallet.NewRequestService(db, ledger, promos)
	walletHandler := wallet.NewHandler(ledger, requests)

	holds := expirable.New(nil)

	bookingService := booking.NewService(booking.Deps{
		DB:       db,
		Bookings: bookingRepo,
		Rooms:    roomRepo,
		Services: serviceRepo,
		Users:    userRepo,
		Pricer:   resolver,
		Checker:  checker,
		Ledger:   ledger,
		Holds:    holds,
		Notify:   notifier.NewLogSender(),
		Deposit:  booking.DepositPolicy{Mode: cfg.DepositMode, Value: cfg.DepositValue},
		HoldTTL:  cfg.HoldTTL,
	})
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(roomRepo, serviceRepo, ruleRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if removed := holds.Sweep(); removed > 0 {
			log.Printf("hold sweep removed=%d", removed)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	if _, err := c.AddFunc("@every 10m", func() {
		swept, err := bookingService.SweepStalePending(context.Background(), cfg.PendingTTL)
		if err != nil {
			log.Printf("pending sweep failed: %v", err)
			return
		}
		if swept > 0 {
			log.Printf("pending sweep cancelled=%d", swept)
		}
	}); err != nil {
		log.Fatalf("cron: %v", err)
	}
	c.Start()
	defer c.Stop()

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authed := v1.Group("/")
		authed.Use(middleware.Auth(j))

		staff := v1.Group("/")
		staff.Use(middleware.Auth(j), middleware.RequireAnyRole("staff", "admin"))

		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())

		pricingHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1, admin)
		walletHandler.RegisterRoutes(authed, admin)
		bookingHandler.RegisterRoutes(authed, staff, admin)
	}

	log.Printf("listening on %s (env=%s, availability=%s)", cfg.ListenAddr, cfg.AppEnv, cfg.AvailabilityPolicy)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
