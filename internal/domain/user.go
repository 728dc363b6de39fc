package domain

import "time"

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

// User carries the wallet projection. WalletBalance and BonusBalance
// are cached aggregates; the ledger is their only legitimate writer.
type User struct {
	ID           int64    `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string   `json:"-" gorm:"type:varchar(255)"`
	Name         string   `json:"name" gorm:"type:varchar(255)"`
	Phone        string   `json:"phone,omitempty" gorm:"type:varchar(32)"`
	Role         UserRole `json:"role" gorm:"type:varchar(16);not null;default:guest"`

	WalletBalance int64 `json:"wallet_balance" gorm:"not null;default:0"`
	BonusBalance  int64 `json:"bonus_balance" gorm:"not null;default:0"`

	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
