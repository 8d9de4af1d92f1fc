package models

import "time"

// Role controls which operations a user may perform.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleRep    Role = "REP"
	RoleViewer Role = "VIEWER"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleRep, RoleViewer:
		return true
	}
	return false
}

// User represents an application user. A REP is optionally bound to
// exactly one Lorry; ADMIN and VIEWER carry no lorry binding.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:16;not null"`
	LorryID      *uint  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Lorry *Lorry `gorm:"constraint:OnDelete:SET NULL"`
}
