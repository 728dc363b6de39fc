package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogService, error) {
	var svc domain.CatalogService
	tx := r.db.WithContext(ctx).First(&svc, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &svc, nil
}

func (r *ServiceRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.CatalogService, error) {
	var svcs []domain.CatalogService
	tx := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_active = ?", hotelID, true).
		Order("name asc").
		Find(&svcs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return svcs, nil
}
