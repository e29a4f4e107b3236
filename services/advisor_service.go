package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"

	"gorm.io/gorm"
)

// AdvisorService produces the daily nutrition review, cached per day by a
// signature of the log so repeated opens don't re-bill the provider.
type AdvisorService struct {
	provider *DeepSeekService
	logs     *FoodLogService
}

func NewAdvisorService(provider *DeepSeekService, logs *FoodLogService) *AdvisorService {
	return &AdvisorService{provider: provider, logs: logs}
}

func adviceSignature(count int, stats DailyStats) string {
	return fmt.Sprintf("%d|%.0f|%.0f", count, stats.TotalCalories, stats.TotalProtein)
}

func (a *AdvisorService) GetAdvice(ctx context.Context, user *models.User) (string, error) {
	today := DateString(time.Now())

	entries, err := a.logs.ListByDate(user.ID, today)
	if err != nil {
		return "", err
	}
	stats := FoldStats(entries)
	signature := adviceSignature(len(entries), stats)

	var cached models.AdviceCache
	err = config.DB.
		Where("user_id = ? AND date = ? AND signature = ?", user.ID, today, signature).
		First(&cached).Error
	if err == nil {
		return cached.Advice, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	advice, err := a.provider.GetNutritionAdvice(ctx, user, stats, entries)
	if err != nil {
		return "", err
	}

	entry := models.AdviceCache{
		UserID:    user.ID,
		Date:      today,
		Signature: signature,
		Advice:    advice,
	}
	// Cache failures are not worth surfacing
	_ = config.DB.Create(&entry).Error

	return advice, nil
}
