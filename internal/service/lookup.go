package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
)

const msgProviderNotFound = "Provider profile not found"

// loadProfile returns the caller's profile with its Provider row preloaded.
func loadProfile(ctx context.Context, db *gorm.DB, userID uint, notFoundMsg, failMsg string) (*model.Profile, error) {
	var profile model.Profile
	err := db.WithContext(ctx).
		Preload("Provider").
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound(notFoundMsg)
	}
	if err != nil {
		return nil, Internal(failMsg, err)
	}
	return &profile, nil
}

// loadProvider resolves the caller's Provider, failing with NotFound when the
// caller has no profile or the profile has no provider row.
func loadProvider(ctx context.Context, db *gorm.DB, userID uint, failMsg string) (*model.Provider, error) {
	profile, err := loadProfile(ctx, db, userID, msgProviderNotFound, failMsg)
	if err != nil {
		return nil, err
	}
	p, ok := profile.Participant().(model.ProviderParticipant)
	if !ok {
		return nil, NotFound(msgProviderNotFound)
	}
	p.Provider.Profile = profile
	return p.Provider, nil
}
