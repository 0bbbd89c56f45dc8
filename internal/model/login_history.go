package model

import "time"

// LoginHistory records each successful sign-in.
type LoginHistory struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Device    string    `gorm:"size:255"` // raw User-Agent, truncated
	IP        string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
