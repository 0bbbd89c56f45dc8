package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/pkg/subscription"
)

// detailLimit caps the portfolio items and reviews returned with a provider.
const detailLimit = 10

type SetupProviderInput struct {
	Profession   *string
	ServiceTypes []string
	Pricing      map[string]float64
	TravelRadius *float64
	SocialLinks  map[string]string
	Availability json.RawMessage
}

// ProviderFilter narrows the public provider listing. Empty fields match all.
type ProviderFilter struct {
	Search      string
	ServiceType string
	Location    string
}

type ProviderService struct {
	db *gorm.DB
}

func NewProviderService(db *gorm.DB) *ProviderService {
	return &ProviderService{db: db}
}

// Setup creates the caller's Provider row or updates the existing one.
func (s *ProviderService) Setup(ctx context.Context, userID uint, in SetupProviderInput) (*model.Provider, error) {
	const failMsg = "Failed to setup provider"

	if len(in.ServiceTypes) == 0 {
		return nil, Validation("At least one service type is required")
	}
	if len(in.Availability) > 0 && !json.Valid(in.Availability) {
		return nil, Validation("Availability must be valid JSON")
	}

	profile, err := loadProfile(ctx, s.db, userID, "Profile not found. Please create a profile first.", failMsg)
	if err != nil {
		return nil, err
	}
	if profile.Role != model.RoleProvider {
		return nil, Forbidden("Only providers can set up provider profiles")
	}

	fields := model.Provider{
		Profession:   in.Profession,
		ServiceTypes: datatypes.JSONSlice[string](in.ServiceTypes),
		Pricing:      datatypes.NewJSONType(in.Pricing),
		TravelRadius: in.TravelRadius,
		SocialLinks:  datatypes.NewJSONType(in.SocialLinks),
		Availability: datatypes.JSON(in.Availability),
	}

	db := s.db.WithContext(ctx)
	if existing, ok := profile.Participant().(model.ProviderParticipant); ok {
		err := db.Model(existing.Provider).
			Select("Profession", "ServiceTypes", "Pricing", "TravelRadius", "SocialLinks", "Availability").
			Updates(&fields).Error
		if err != nil {
			return nil, Internal(failMsg, err)
		}
		return existing.Provider, nil
	}

	fields.ProfileID = profile.ID
	fields.SubscriptionTier = subscription.FreeTier
	if err := db.Create(&fields).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	return &fields, nil
}

// List returns providers ordered by rating, filtered in memory by f.
func (s *ProviderService) List(ctx context.Context, f ProviderFilter) ([]model.Provider, error) {
	var providers []model.Provider
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("Profile.User").
		Order("average_rating desc, id asc").
		Find(&providers).Error
	if err != nil {
		return nil, Internal("Failed to fetch providers", err)
	}

	out := providers[:0]
	for i := range providers {
		if f.matches(&providers[i]) {
			out = append(out, providers[i])
		}
	}
	return out, nil
}

func (f ProviderFilter) matches(p *model.Provider) bool {
	if f.Search != "" && !matchesSearch(p, strings.ToLower(f.Search)) {
		return false
	}
	if f.ServiceType != "" && !p.OffersService(f.ServiceType) {
		return false
	}
	if f.Location != "" {
		if p.Profile == nil || !containsFold(p.Profile.Location, strings.ToLower(f.Location)) {
			return false
		}
	}
	return true
}

func matchesSearch(p *model.Provider, needle string) bool {
	if containsFold(p.Profession, needle) {
		return true
	}
	if p.Profile != nil {
		if strings.Contains(strings.ToLower(p.Profile.Handle), needle) || containsFold(p.Profile.Bio, needle) {
			return true
		}
		if p.Profile.User != nil && strings.Contains(strings.ToLower(p.Profile.User.Name), needle) {
			return true
		}
	}
	for _, st := range p.ServiceTypes {
		if strings.Contains(strings.ToLower(st), needle) {
			return true
		}
	}
	return false
}

// containsFold reports whether *s contains the lowercased needle; nil never matches.
func containsFold(s *string, needle string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), needle)
}

// Get returns one provider with its latest portfolio items and reviews.
func (s *ProviderService) Get(ctx context.Context, id uint) (*model.Provider, error) {
	var provider model.Provider
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("PortfolioItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc, id desc").Limit(detailLimit)
		}).
		Preload("ProviderReviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc, id desc").Limit(detailLimit)
		}).
		Preload("ProviderReviews.Client").
		First(&provider, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Provider not found")
	}
	if err != nil {
		return nil, Internal("Failed to fetch provider", err)
	}
	return &provider, nil
}
