package models

import "time"

// Lorry is a vehicle/crew unit assigned to one territory, owning routes.
// Routes restrict deletion: a lorry with routes cannot be removed until
// its routes are gone.
type Lorry struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null"`
	TerritoryID uint   `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Territory Territory `gorm:"constraint:OnDelete:RESTRICT"`
	Routes    []Route
}
