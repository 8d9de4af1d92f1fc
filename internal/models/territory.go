package models

import "time"

// Territory is a geographic grouping containing lorries. Territories are
// static reference data; the seed creates them and the UI only reads them.
type Territory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Lorries []Lorry
}
