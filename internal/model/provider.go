package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nexfolio_backend/pkg/subscription"
)

type Provider struct {
	gorm.Model
	ProfileID    uint                        `gorm:"uniqueIndex;not null"`
	Profession   *string
	ServiceTypes datatypes.JSONSlice[string] `gorm:"not null"`
	Pricing      datatypes.JSONType[map[string]float64]
	TravelRadius *float64
	SocialLinks  datatypes.JSONType[map[string]string]
	Availability datatypes.JSON

	SubscriptionTier      subscription.Tier `gorm:"type:varchar(16);not null;default:'free'"`
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time `gorm:"index"`

	IsVerified    bool    `gorm:"not null;default:false"`
	TotalBookings int     `gorm:"not null;default:0"`
	AverageRating float64 `gorm:"not null;default:0"`

	Profile         *Profile       `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PortfolioItems  []PortfolioItem `gorm:"foreignKey:ProviderID"`
	ProviderReviews []Review        `gorm:"foreignKey:ProviderID"`
}

// OffersService reports exact membership of serviceType in ServiceTypes.
func (p *Provider) OffersService(serviceType string) bool {
	for _, st := range p.ServiceTypes {
		if st == serviceType {
			return true
		}
	}
	return false
}

type PortfolioItem struct {
	gorm.Model
	ProviderID  uint    `gorm:"index;not null"`
	ImageURL    string  `gorm:"not null"`
	Title       *string
	Description *string `gorm:"type:text"`

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
