package models

import "gorm.io/gorm"

// Stores the user's widget order verbatim. Items is comma-joined; no
// validation of duplicates or unknown ids — an unknown id simply renders
// nothing on the client.
type DashboardLayout struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null"`
	Items  string `gorm:"type:text"`
}
