package models

import "time"

type User struct {
	BaseModel

	Email            string  `gorm:"uniqueIndex;not null"`
	PasswordHash     string  `gorm:"not null"`
	Name             *string `gorm:"size:100"`
	AvatarURL        *string
	ResetToken       *string `gorm:"index"`
	ResetTokenExpiry *time.Time

	// Relationships
	Palettes    []Palette    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Collections []Collection `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
