package services

import (
	"time"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"

	"github.com/google/uuid"
)

type FoodLogService struct{}

func NewFoodLogService() *FoodLogService {
	return &FoodLogService{}
}

// DailyStats is always derived from the day's entries, never stored.
type DailyStats struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

type FoodEntryInput struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *FoodLogService) Add(userID uint, input FoodEntryInput, at time.Time) (*models.FoodEntry, error) {
	entry := &models.FoodEntry{
		UID:      uuid.NewString(),
		UserID:   userID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Date:     DateString(at),
		AteAt:    at,
	}
	if entry.Quantity == "" {
		entry.Quantity = "1 serving"
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *FoodLogService) ListByDate(userID uint, date string) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	q := config.DB.Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	err := q.Order("ate_at DESC").Find(&entries).Error
	return entries, err
}

func (s *FoodLogService) Update(userID uint, uid string, input FoodEntryInput) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	if err := config.DB.
		Where("uid = ? AND user_id = ?", uid, userID).
		First(&entry).Error; err != nil {
		return nil, err
	}

	if input.Name != "" {
		entry.Name = input.Name
	}
	if input.Quantity != "" {
		entry.Quantity = input.Quantity
	}
	entry.Calories = input.Calories
	entry.Protein = input.Protein
	entry.Carbs = input.Carbs
	entry.Fat = input.Fat

	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *FoodLogService) Delete(userID uint, uid string) error {
	return config.DB.
		Where("uid = ? AND user_id = ?", uid, userID).
		Delete(&models.FoodEntry{}).Error
}

// StatsForDate folds the day's entries into the aggregate.
func (s *FoodLogService) StatsForDate(userID uint, date string) (DailyStats, int, error) {
	entries, err := s.ListByDate(userID, date)
	if err != nil {
		return DailyStats{}, 0, err
	}
	return FoldStats(entries), len(entries), nil
}

func FoldStats(entries []models.FoodEntry) DailyStats {
	var stats DailyStats
	for _, e := range entries {
		stats.TotalCalories += e.Calories
		stats.TotalProtein += e.Protein
		stats.TotalCarbs += e.Carbs
		stats.TotalFat += e.Fat
	}
	return stats
}
