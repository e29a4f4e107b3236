package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged meal with its macro snapshot. UID is the client-visible
// identifier; Date is YYYY-MM-DD so a day's log can be queried directly.
type FoodEntry struct {
	gorm.Model
	UID      string `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID   uint   `gorm:"index;not null"`
	Name     string `gorm:"not null"`
	Quantity string // serving-size string, e.g. "1 serving"
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Date     string    `gorm:"type:varchar(10);index"` // YYYY-MM-DD
	AteAt    time.Time // timestamp of the entry
}
