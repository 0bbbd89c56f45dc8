package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/pkg/subscription"
)

type AddPortfolioItemInput struct {
	ImageURL    string
	Title       *string
	Description *string
}

type PortfolioService struct {
	db *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{db: db}
}

// Add creates a portfolio item for the caller's provider, respecting the
// portfolio limit of its subscription tier.
func (s *PortfolioService) Add(ctx context.Context, userID uint, in AddPortfolioItemInput) (*model.PortfolioItem, error) {
	const failMsg = "Failed to add portfolio item"

	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, Validation("Image URL is required")
	}

	var item model.PortfolioItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		provider, err := loadProvider(ctx, tx, userID, failMsg)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.PortfolioItem{}).Where("provider_id = ?", provider.ID).Count(&count).Error; err != nil {
			return Internal(failMsg, err)
		}
		if !subscription.CanAddPortfolioItem(provider.SubscriptionTier, count) {
			info := subscription.Lookup(provider.SubscriptionTier)
			e := Forbidden(fmt.Sprintf("Portfolio limit reached for %s tier", info.Name))
			e.Details = map[string]interface{}{
				"currentCount": count,
				"maxLimit":     info.PortfolioLimit,
			}
			return e
		}

		item = model.PortfolioItem{
			ProviderID:  provider.ID,
			ImageURL:    in.ImageURL,
			Title:       in.Title,
			Description: in.Description,
		}
		if err := tx.Create(&item).Error; err != nil {
			return Internal(failMsg, err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, failMsg)
	}
	return &item, nil
}

// Delete removes an item owned by the caller's provider. Items that do not
// exist and items owned by someone else are reported the same way.
func (s *PortfolioService) Delete(ctx context.Context, userID, itemID uint) error {
	const failMsg = "Failed to delete portfolio item"

	provider, err := loadProvider(ctx, s.db, userID, failMsg)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", itemID, provider.ID).
		Delete(&model.PortfolioItem{})
	if res.Error != nil {
		return Internal(failMsg, res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Portfolio item not found or unauthorized")
	}
	return nil
}

// asServiceError keeps *Error values returned from a transaction body and
// wraps anything else (commit failures) as Internal.
func asServiceError(err error, failMsg string) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return Internal(failMsg, err)
}
