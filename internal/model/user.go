package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`

	Profile *Profile `gorm:"foreignKey:UserID"`
}

// NormalizeEmail lowercases and trims an address before lookups and inserts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
