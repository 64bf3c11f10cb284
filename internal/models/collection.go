package models

import "github.com/google/uuid"

type Collection struct {
	BaseModel

	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:100;not null"`
	Description *string   `gorm:"size:500"`

	// Relationships
	User     User                `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Palettes []CollectionPalette `gorm:"foreignKey:CollectionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// CollectionPalette is the membership join row. The composite unique index
// is the real duplicate guard; the handler pre-check only exists to produce
// a friendly error message.
type CollectionPalette struct {
	BaseModel

	CollectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collection_palette"`
	PaletteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_collection_palette"`

	// Relationships
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Palette    Palette    `gorm:"foreignKey:PaletteID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
