package model

import (
	"time"

	"gorm.io/gorm"

	"nexfolio_backend/pkg/subscription"
)

// SubscriptionHistory is an append-only record of tier changes.
type SubscriptionHistory struct {
	gorm.Model
	ProviderID uint                `gorm:"index;not null"`
	Tier       subscription.Tier   `gorm:"type:varchar(16);not null"`
	Action     subscription.Action `gorm:"type:varchar(16);not null"`
	Amount     float64             `gorm:"not null"`
	StartDate  time.Time           `gorm:"not null"`

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// All lists models in dependency order for migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&LoginHistory{},
		&Profile{},
		&Provider{},
		&PortfolioItem{},
		&Booking{},
		&Review{},
		&SubscriptionHistory{},
	}
}
