package models

import "github.com/google/uuid"

// Palette stores its colors as a JSON-encoded array string. The serialized
// form is what the search color filter substring-matches against, so the
// column stays plain text.
type Palette struct {
	BaseModel

	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:100;not null"`
	Description *string   `gorm:"size:500"`
	Colors      string    `gorm:"not null"`
	ImageURL    *string
	IsFavorite  bool `gorm:"not null;default:false"`

	// Relationships
	User   User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Shares []PaletteShare `gorm:"foreignKey:PaletteID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
