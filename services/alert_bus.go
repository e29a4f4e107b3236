package services

import (
	"time"

	"github.com/andrientheodore/Nutrichat/models"
	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub) {
	_alert = alertDeps{db: db, rt: rt}
}

// EmitInsight persists an insight alert and pushes it over the hub. Safe to
// call from timers before InitAlertDeps only as a no-op.
func EmitInsight(userID uint, alert models.Alert) {
	if _alert.db == nil {
		return
	}
	alert.UserID = userID
	alert.CreatedAt = time.Now()
	_ = _alert.db.Create(&alert).Error

	if _alert.rt != nil {
		_alert.rt.BroadcastInsight(userID, map[string]any{
			"kind":    "insight.created",
			"insight": alert,
		})
	}
}

func ListAlerts(db *gorm.DB, userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
