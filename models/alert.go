package models

import "time"

type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"size:20"` // "behavioral" | "biometric"
	Title     string
	Message   string `gorm:"type:text"`
	Action    string
	DataPoint string // e.g. "Sleep Score: 62 (Restless)"
	CreatedAt time.Time
}
