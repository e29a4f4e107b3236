package models

import "gorm.io/gorm"

// Per-day advisory text cache. Signature is derived from the log size and
// daily totals, so any change to the day's log invalidates the entry.
type AdviceCache struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Date      string `gorm:"type:varchar(10);index"` // YYYY-MM-DD
	Signature string `gorm:"type:varchar(64)"`
	Advice    string `gorm:"type:text"`
}
