package models

import "github.com/google/uuid"

// PaletteShare is a one-directional grant from the palette owner to another
// user. At most one share may exist per (palette, recipient) pair.
type PaletteShare struct {
	BaseModel

	PaletteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_palette_shared_with"`
	SharedByID   uuid.UUID `gorm:"type:uuid;not null;index"`
	SharedWithID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_palette_shared_with"`
	Message      *string   `gorm:"size:500"`

	// Relationships
	Palette    Palette `gorm:"foreignKey:PaletteID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SharedBy   User    `gorm:"foreignKey:SharedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SharedWith User    `gorm:"foreignKey:SharedWithID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
