package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nexfolio_backend/internal/model"
	"nexfolio_backend/pkg/subscription"
)

const msgCancelled = "Subscription cancelled successfully. You are now on the Free tier."

type CurrentSubscription struct {
	Tier                  subscription.Tier
	Features              []string
	PortfolioLimit        int
	CurrentPortfolioCount int64
	Price                 float64
	StartDate             *time.Time
	EndDate               *time.Time
}

type UpgradeResult struct {
	Action  subscription.Action
	Tier    subscription.Tier
	Message string
}

type SubscriptionService struct {
	db     *gorm.DB
	period time.Duration
	now    func() time.Time
}

func NewSubscriptionService(db *gorm.DB, periodDays int) *SubscriptionService {
	if periodDays <= 0 {
		periodDays = 30
	}
	return &SubscriptionService{
		db:     db,
		period: time.Duration(periodDays) * 24 * time.Hour,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *SubscriptionService) Current(ctx context.Context, userID uint) (*CurrentSubscription, error) {
	const failMsg = "Failed to fetch subscription"

	provider, err := loadProvider(ctx, s.db, userID, failMsg)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&model.PortfolioItem{}).Where("provider_id = ?", provider.ID).Count(&count).Error
	if err != nil {
		return nil, Internal(failMsg, err)
	}

	info := subscription.Lookup(provider.SubscriptionTier)
	return &CurrentSubscription{
		Tier:                  info.Tier,
		Features:              info.Features,
		PortfolioLimit:        info.PortfolioLimit,
		CurrentPortfolioCount: count,
		Price:                 info.Price,
		StartDate:             provider.SubscriptionStartDate,
		EndDate:               provider.SubscriptionEndDate,
	}, nil
}

// Upgrade moves the caller's provider to target and records the change.
// paymentMethodID is accepted for API compatibility; billing is simulated.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID uint, target subscription.Tier, paymentMethodID string) (*UpgradeResult, error) {
	const failMsg = "Failed to upgrade subscription"

	if !target.Valid() {
		return nil, Validation("Invalid subscription tier")
	}

	var result UpgradeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		provider, err := loadProvider(ctx, tx, userID, failMsg)
		if err != nil {
			return err
		}

		action, err := subscription.ResolveAction(provider.SubscriptionTier, target)
		switch {
		case errors.Is(err, subscription.ErrSameTier):
			return Validation("Already on this tier")
		case err != nil:
			return Validation(err.Error())
		}

		info := subscription.Tiers[target]
		now := s.now()
		var end *time.Time
		if target != subscription.FreeTier {
			e := now.Add(s.period)
			end = &e
		}

		if err := s.applyTier(tx, provider.ID, target, action, info.Price, now, end); err != nil {
			return Internal(failMsg, err)
		}

		result = UpgradeResult{
			Action:  action,
			Tier:    target,
			Message: fmt.Sprintf("Successfully %sd to %s tier", action, info.Name),
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, failMsg)
	}
	return &result, nil
}

// Cancel reverts the caller's provider to the free tier.
func (s *SubscriptionService) Cancel(ctx context.Context, userID uint) (string, error) {
	const failMsg = "Failed to cancel subscription"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		provider, err := loadProvider(ctx, tx, userID, failMsg)
		if err != nil {
			return err
		}
		if err := s.applyTier(tx, provider.ID, subscription.FreeTier, subscription.ActionCancel, 0, s.now(), nil); err != nil {
			return Internal(failMsg, err)
		}
		return nil
	})
	if err != nil {
		return "", asServiceError(err, failMsg)
	}
	return msgCancelled, nil
}

func (s *SubscriptionService) History(ctx context.Context, userID uint) ([]model.SubscriptionHistory, error) {
	const failMsg = "Failed to fetch subscription history"

	provider, err := loadProvider(ctx, s.db, userID, failMsg)
	if err != nil {
		return nil, err
	}

	var rows []model.SubscriptionHistory
	err = s.db.WithContext(ctx).
		Where("provider_id = ?", provider.ID).
		Order("created_at desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, Internal(failMsg, err)
	}
	return rows, nil
}

// ExpireLapsed reverts every paid subscription whose end date has passed to
// the free tier and returns how many providers were changed.
func (s *SubscriptionService) ExpireLapsed(ctx context.Context) (int, error) {
	now := s.now()

	var lapsed []model.Provider
	err := lapsedScope(s.db.WithContext(ctx), now).
		Select("id").
		Find(&lapsed).Error
	if err != nil {
		return 0, fmt.Errorf("find lapsed subscriptions: %w", err)
	}

	expired := 0
	for _, p := range lapsed {
		var changed bool
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			changed, err = expireProvider(tx, p.ID, now)
			return err
		})
		if err != nil {
			return expired, fmt.Errorf("expire provider %d: %w", p.ID, err)
		}
		if changed {
			expired++
		}
	}
	return expired, nil
}

func lapsedScope(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Model(&model.Provider{}).
		Where("subscription_tier <> ? AND subscription_end_date IS NOT NULL AND subscription_end_date < ?", subscription.FreeTier, now)
}

// expireProvider reverts one provider to free only if it is still lapsed at
// write time. A provider renewed since the sweep's read is left alone and gets
// no history row.
func expireProvider(tx *gorm.DB, providerID uint, now time.Time) (bool, error) {
	res := lapsedScope(tx, now).
		Where("id = ?", providerID).
		Updates(map[string]interface{}{
			"subscription_tier":       subscription.FreeTier,
			"subscription_start_date": now,
			"subscription_end_date":   nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	err := tx.Create(&model.SubscriptionHistory{
		ProviderID: providerID,
		Tier:       subscription.FreeTier,
		Action:     subscription.ActionCancel,
		StartDate:  now,
	}).Error
	return err == nil, err
}

// applyTier updates the provider's tier window and appends a history row.
func (s *SubscriptionService) applyTier(tx *gorm.DB, providerID uint, tier subscription.Tier, action subscription.Action, amount float64, start time.Time, end *time.Time) error {
	err := tx.Model(&model.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]interface{}{
			"subscription_tier":       tier,
			"subscription_start_date": start,
			"subscription_end_date":   end,
		}).Error
	if err != nil {
		return err
	}

	return tx.Create(&model.SubscriptionHistory{
		ProviderID: providerID,
		Tier:       tier,
		Action:     action,
		Amount:     amount,
		StartDate:  start,
	}).Error
}
