package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/wallet"
)

// Seeds a local database with a hotel, rooms, services, pricing rules
// and funded guest wallets. Wallet money goes through the ledger so
// the transaction history stays consistent with the balances.
func main() {
	_ = godotenv.Load()

	dsn := "hotel.db"
	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM wallet_transactions")
	db.Exec("DELETE FROM deposit_requests")
	db.Exec("DELETE FROM withdrawal_requests")
	db.Exec("DELETE FROM booking_service_items")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM pricing_rules")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	admin := domain.User{Email: "admin@hotel.kz", Name: "Администратор", Role: domain.RoleAdmin}
	db.Create(&admin)
	staff := domain.User{Email: "frontdesk@hotel.kz", Name: "Ресепшн", Role: domain.RoleStaff}
	db.Create(&staff)

	guests := make([]domain.User, 0, 3)
	for i, email := range []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"} {
		g := domain.User{
			Email: email,
			Name:  fmt.Sprintf("Гость %d", i+1),
			Phone: fmt.Sprintf("+7 777 123 45%02d", i+10),
			Role:  domain.RoleGuest,
		}
		db.Create(&g)
		guests = append(guests, g)
	}

	log.Println("Creating hotel and rooms...")
	hotel := domain.Hotel{
		Name:     "Almaty Grand",
		Address:  "пр. Абая 10",
		City:     "Алматы",
		Phone:    "+7 727 000 0001",
		IsActive: true,
	}
	db.Create(&hotel)

	rooms := []domain.Room{
		{HotelID: hotel.ID, Name: "Standard", BasePrice: 45_000, Quantity: 10, CapacityAdults: 2, CapacityChildren: 1, IsActive: true},
		{HotelID: hotel.ID, Name: "Family", BasePrice: 70_000, Quantity: 5, CapacityAdults: 3, CapacityChildren: 3, IsActive: true},
		{HotelID: hotel.ID, Name: "Suite", BasePrice: 120_000, Quantity: 2, CapacityAdults: 2, CapacityChildren: 2, IsActive: true},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	log.Println("Creating services...")
	for _, s := range []domain.CatalogService{
		{HotelID: hotel.ID, Name: "Завтрак", Price: 5_000, IsActive: true},
		{HotelID: hotel.ID, Name: "Спа", Price: 30_000, IsActive: true},
		{HotelID: hotel.ID, Name: "Трансфер", Price: 12_000, IsActive: true},
	} {
		db.Create(&s)
	}

	log.Println("Creating pricing rules...")
	summerStart := time.Date(time.Now().Year(), 6, 1, 0, 0, 0, 0, time.UTC)
	summerEnd := time.Date(time.Now().Year(), 8, 31, 0, 0, 0, 0, time.UTC)
	db.Create(&domain.PricingRule{
		Name:          "Летний сезон",
		RoomIDs:       []int64{rooms[0].ID, rooms[1].ID, rooms[2].ID},
		Kind:          domain.RuleDateRange,
		StartDate:     &summerStart,
		EndDate:       &summerEnd,
		ModifierKind:  domain.ModifierPercentage,
		ModifierValue: 25,
		IsActive:      true,
	})
	db.Create(&domain.PricingRule{
		Name:          "Выходные",
		RoomIDs:       []int64{rooms[0].ID, rooms[1].ID},
		Kind:          domain.RuleWeekend,
		ModifierKind:  domain.ModifierPercentage,
		ModifierValue: 10,
		IsActive:      true,
	})

	log.Println("Funding guest wallets through the ledger...")
	ledger := wallet.NewLedger(db)
	ctx := context.Background()
	for i, g := range guests {
		if _, err := ledger.Apply(ctx, wallet.ApplyInput{
			UserID:      g.ID,
			Type:        domain.TransactionDeposit,
			Amount:      int64(200_000 * (i + 1)),
			Description: "seed deposit",
		}); err != nil {
			log.Fatalf("seed deposit for %s failed: %v", g.Email, err)
		}
	}
	if _, err := ledger.Apply(ctx, wallet.ApplyInput{
		UserID:      guests[0].ID,
		Type:        domain.TransactionBonus,
		BonusAmount: 20_000,
		Description: "seed welcome bonus",
	}); err != nil {
		log.Fatalf("seed bonus failed: %v", err)
	}

	log.Println("Seed completed.")
	log.Println("Admin: admin@hotel.kz, staff: frontdesk@hotel.kz")
	log.Println("Guests: asel@mail.kz, bekzat@gmail.com, dina@yandex.kz")
}
