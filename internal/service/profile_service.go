package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
)

type CreateProfileInput struct {
	Handle      string
	Role        model.Role
	Bio         *string
	Location    *string
	PhoneNumber *string
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Create(ctx context.Context, userID uint, in CreateProfileInput) (*model.Profile, error) {
	const failMsg = "Failed to create profile"

	if in.Role != model.RoleProvider && in.Role != model.RoleClient {
		return nil, Validation("Role must be provider or client")
	}
	handle := strings.TrimSpace(in.Handle)
	if handle == "" {
		return nil, Validation("Handle is required")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	if count > 0 {
		return nil, Conflict("Profile already exists")
	}

	if err := db.Model(&model.Profile{}).Where("handle = ?", handle).Count(&count).Error; err != nil {
		return nil, Internal(failMsg, err)
	}
	if count > 0 {
		return nil, Conflict("Handle already taken")
	}

	profile := model.Profile{
		UserID:      userID,
		Handle:      handle,
		Role:        in.Role,
		Bio:         in.Bio,
		Location:    in.Location,
		PhoneNumber: in.PhoneNumber,
	}
	if err := db.Create(&profile).Error; err != nil {
		// lost a race on one of the unique indexes
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Handle already taken")
		}
		return nil, Internal(failMsg, err)
	}
	return &profile, nil
}

// Get returns the caller's profile with its Provider row, if any.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*model.Profile, error) {
	return loadProfile(ctx, s.db, userID, "Profile not found", "Failed to fetch profile")
}
