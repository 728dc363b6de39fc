package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

// Service exposes the read-side catalog plus the admin-only pricing
// rule management.
type Service struct {
	rooms    *repository.RoomRepository
	services *repository.ServiceRepository
	rules    *repository.PricingRuleRepository
}

func NewService(rooms *repository.RoomRepository, services *repository.ServiceRepository, rules *repository.PricingRuleRepository) *Service {
	return &Service{rooms: rooms, services: services, rules: rules}
}

func (s *Service) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return s.rooms.ListHotels(ctx)
}

func (s *Service) ListRooms(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return s.rooms.ListByHotel(ctx, hotelID)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrNotFound
	}
	return room, nil
}

func (s *Service) ListServices(ctx context.Context, hotelID int64) ([]domain.CatalogService, error) {
	return s.services.ListByHotel(ctx, hotelID)
}

func (s *Service) ListPricingRules(ctx context.Context) ([]domain.PricingRule, error) {
	return s.rules.List(ctx)
}

// CreatePricingRule validates and stores a rule. Rules take effect on
// the next quote; existing bookings keep their frozen totals.
func (s *Service) CreatePricingRule(ctx context.Context, in CreatePricingRuleInput) (*domain.PricingRule, error) {
	kind := domain.PricingRuleKind(in.Kind)
	if kind != domain.RuleDateRange && kind != domain.RuleWeekend {
		return nil, fmt.Errorf("%w: kind must be date_range or weekend", ErrValidation)
	}

	modKind := domain.PriceModifierKind(in.ModifierKind)
	if modKind != domain.ModifierPercentage && modKind != domain.ModifierFixed {
		return nil, fmt.Errorf("%w: modifier_kind must be percentage or fixed", ErrValidation)
	}
	if modKind == domain.ModifierPercentage && in.ModifierValue < -100 {
		return nil, fmt.Errorf("%w: percentage cannot discount below zero", ErrValidation)
	}

	rule := &domain.PricingRule{
		Name:          in.Name,
		RoomIDs:       in.RoomIDs,
		Kind:          kind,
		ModifierKind:  modKind,
		ModifierValue: in.ModifierValue,
		IsActive:      true,
	}

	if kind == domain.RuleDateRange {
		start, err := parseDate(in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
		}
		end, err := parseDate(in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end_date is before start_date", ErrValidation)
		}
		rule.StartDate = &start
		rule.EndDate = &end
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) DeactivatePricingRule(ctx context.Context, id int64) error {
	ok, err := s.rules.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return domain.DateOnly(d), nil
}
