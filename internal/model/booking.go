package model

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	ProviderID  uint          `gorm:"index;not null"`
	ClientID    uint          `gorm:"index;not null"` // client's Profile ID
	ServiceType string        `gorm:"not null"`
	BookingDate time.Time     `gorm:"index;not null"`
	BookingTime string        `gorm:"not null"`
	Status      BookingStatus `gorm:"type:varchar(16);not null;default:'pending'"`
	IsTrial     bool          `gorm:"not null;default:false"`
	Price       float64       `gorm:"not null"`
	Notes       *string       `gorm:"type:text"`
	Location    *string

	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Client   *Profile  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Review   *Review   `gorm:"foreignKey:BookingID"`
}

type Review struct {
	gorm.Model
	BookingID  uint    `gorm:"uniqueIndex;not null"`
	ProviderID uint    `gorm:"index;not null"`
	ClientID   uint    `gorm:"index;not null"`
	Rating     int     `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    *string `gorm:"type:text"`

	Booking  *Booking  `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Client   *Profile  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
