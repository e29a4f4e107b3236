package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	PhoneNumber   string `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"default:User"`
	CalorieTarget float64
	ProteinTarget float64
	Weight        float64 // kg, 0 = unknown
	Height        float64 // cm, 0 = unknown
	Age           int
	Gender        string

	// Wearable connections driving biometric insights.
	HasOura        bool
	HasAppleHealth bool
	HasCGM         bool

	SheetsWebhookURL string // optional per-user spreadsheet sink
	DarkMode         bool
}
