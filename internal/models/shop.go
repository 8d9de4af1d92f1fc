package models

import "time"

// Payment methods accepted by a shop.
const (
	PaymentCash   = "CASH"
	PaymentCredit = "CREDIT"
	PaymentCheque = "CHEQUE"
)

// ValidPaymentMethod reports whether s is a known payment method.
func ValidPaymentMethod(s string) bool {
	return s == PaymentCash || s == PaymentCredit || s == PaymentCheque
}

// Payment statuses tracked per shop.
const (
	StatusOnTime           = "ON_TIME"
	StatusDelayed          = "DELAYED"
	StatusExtremelyDelayed = "EXTREMELY_DELAYED"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	return s == StatusOnTime || s == StatusDelayed || s == StatusExtremelyDelayed
}

// Shop is a point-of-sale location with payment and location data.
// CreditPeriod (days) is meaningful only when PaymentMethod is CREDIT.
type Shop struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:128;not null"`
	OwnerName     string  `gorm:"size:128"`
	ContactNumber string  `gorm:"size:32"`
	PaymentMethod string  `gorm:"size:16;not null"`
	CreditPeriod  *int
	PaymentStatus string  `gorm:"size:32;not null;default:ON_TIME"`
	AvgBillValue  float64
	Latitude      float64 `gorm:"not null"`
	Longitude     float64 `gorm:"not null"`
	ImageURL      string  `gorm:"size:512"`
	RouteID       uint    `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Route Route `gorm:"constraint:OnDelete:RESTRICT"`
}
