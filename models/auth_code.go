package models

import "time"

// One-time login code sent to a phone number. The profile itself is only
// created after successful verification.
type AuthCode struct {
	ID          uint   `gorm:"primaryKey"`
	PhoneNumber string `gorm:"index;not null"`
	Code        string `gorm:"size:8"`
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
