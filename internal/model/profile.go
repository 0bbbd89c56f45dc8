package model

import "gorm.io/gorm"

type Role string

const (
	RoleProvider Role = "provider"
	RoleClient   Role = "client"
)

type Profile struct {
	gorm.Model
	UserID      uint    `gorm:"uniqueIndex;not null"`
	Handle      string  `gorm:"uniqueIndex;not null"`
	Role        Role    `gorm:"type:varchar(16);not null"`
	Bio         *string `gorm:"type:text"`
	Location    *string
	PhoneNumber *string

	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider *Provider `gorm:"foreignKey:ProfileID"`
}

// Participant is the role a profile acts in. It is either a
// ClientParticipant or a ProviderParticipant.
type Participant interface {
	participant()
	ProfileID() uint
}

type ClientParticipant struct {
	Profile *Profile
}

type ProviderParticipant struct {
	Profile  *Profile
	Provider *Provider
}

func (ClientParticipant) participant()   {}
func (ProviderParticipant) participant() {}

func (c ClientParticipant) ProfileID() uint   { return c.Profile.ID }
func (p ProviderParticipant) ProfileID() uint { return p.Profile.ID }

// Participant resolves the acting role. A profile acts as a provider once a
// Provider row is linked to it (Provider must be preloaded).
func (p *Profile) Participant() Participant {
	if p.Provider != nil && p.Provider.ID != 0 {
		return ProviderParticipant{Profile: p, Provider: p.Provider}
	}
	return ClientParticipant{Profile: p}
}
