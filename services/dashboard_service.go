package services

import (
	"errors"
	"strings"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"

	"gorm.io/gorm"
)

// DefaultDashboardItems is the widget order for a fresh profile.
var DefaultDashboardItems = []string{
	"nutriscore", "charts", "calories", "protein", "carbs", "fat", "foodlog",
}

func GetDashboardLayout(userID uint) ([]string, error) {
	var layout models.DashboardLayout
	err := config.DB.Where("user_id = ?", userID).First(&layout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			items := make([]string, len(DefaultDashboardItems))
			copy(items, DefaultDashboardItems)
			return items, nil
		}
		return nil, err
	}
	if layout.Items == "" {
		return []string{}, nil
	}
	return strings.Split(layout.Items, ","), nil
}

// SaveDashboardLayout persists the order verbatim; duplicates and unknown
// ids are stored as-is.
func SaveDashboardLayout(userID uint, items []string) error {
	layout := models.DashboardLayout{
		UserID: userID,
		Items:  strings.Join(items, ","),
	}
	return config.DB.
		Where("user_id = ?", userID).
		Assign(map[string]interface{}{"items": layout.Items}).
		FirstOrCreate(&layout).Error
}

// MoveDashboardItem applies a standard array move: the item at from is
// removed and re-inserted at to, shifting the intervening run by one.
func MoveDashboardItem(items []string, from, to int) []string {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return items
	}
	out := make([]string, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out[:to], append([]string{moved}, out[to:]...)...)
	return out
}
