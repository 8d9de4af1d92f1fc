package models

import "time"

// Route is a named collection of shops assigned to one lorry.
type Route struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	LorryID   uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lorry Lorry `gorm:"constraint:OnDelete:RESTRICT"`
	Shops []Shop
}
