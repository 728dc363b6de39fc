package domain

import "time"

type Hotel struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Address  string `json:"address,omitempty" gorm:"type:text"`
	City     string `json:"city,omitempty" gorm:"type:varchar(128)"`
	Phone    string `json:"phone,omitempty" gorm:"type:varchar(32)"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Room struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	HotelID     int64  `json:"hotel_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// BasePrice is the nightly rate before any pricing rule applies.
	BasePrice int64 `json:"base_price" gorm:"not null"`
	// Quantity is how many physical units of this room type exist.
	Quantity         int  `json:"quantity" gorm:"not null;default:1"`
	CapacityAdults   int  `json:"capacity_adults" gorm:"not null"`
	CapacityChildren int  `json:"capacity_children" gorm:"not null;default:0"`
	IsActive         bool `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// CatalogService is a bookable extra (breakfast, spa, laundry...).
type CatalogService struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	HotelID  int64  `json:"hotel_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Price    int64  `json:"price" gorm:"not null"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CatalogService) TableName() string {
	return "services"
}
