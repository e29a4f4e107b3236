package services

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/andrientheodore/Nutrichat/models"
)

// Foods that suggest a snacking pattern worth coaching on.
var triggerWords = []string{
	"cookie", "cake", "chocolate", "candy", "snack", "chips", "ice cream",
}

type InsightService struct {
	behavioralDelay time.Duration
	biometricDelay  time.Duration
}

func NewInsightService() *InsightService {
	return &InsightService{
		behavioralDelay: 1500 * time.Millisecond,
		biometricDelay:  3 * time.Second,
	}
}

func IsTriggerFood(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range triggerWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// CheckBehavioralPatterns schedules a coaching popup when a logged food
// matches the trigger list. The timer is in-process only; nothing survives a
// restart.
func (s *InsightService) CheckBehavioralPatterns(userID uint, foodName string) bool {
	if !IsTriggerFood(foodName) {
		return false
	}

	time.AfterFunc(s.behavioralDelay, func() {
		EmitInsight(userID, models.Alert{
			Type:      "behavioral",
			Title:     "Behavioral Pattern Detected",
			Message:   fmt.Sprintf("I notice a pattern of snacking on %s around this time. Is this usually due to stress, boredom, or hunger?", foodName),
			Action:    "Suggest a healthier alternative?",
			DataPoint: "Frequency: 3 days in a row",
		})
	})
	return true
}

// BiometricInsight returns the canned digital-twin content for the user's
// connected wearables, or nil when none applies.
func BiometricInsight(u *models.User) *models.Alert {
	switch {
	case u.HasOura && u.HasCGM:
		return &models.Alert{
			Type:      "biometric",
			Title:     "Digital Twin Prediction",
			Message:   "Based on your poor sleep score last night (Oura), your insulin resistance is likely elevated today. High-carb meals might spike your glucose more than usual.",
			Action:    "Try a protein-rich breakfast",
			DataPoint: "Sleep Score: 62 (Restless)",
		}
	case u.HasOura:
		return &models.Alert{
			Type:      "biometric",
			Title:     "Recovery Alert",
			Message:   "Your readiness score is low. Consider increasing carb intake slightly post-workout to aid recovery, but keep fats low.",
			DataPoint: "Readiness: 58",
		}
	}
	return nil
}

// ScheduleBiometricInsight fires a wearable-driven insight shortly after
// login, most of the time.
func (s *InsightService) ScheduleBiometricInsight(u *models.User) {
	insight := BiometricInsight(u)
	if insight == nil {
		return
	}
	userID := u.ID
	alert := *insight

	time.AfterFunc(s.biometricDelay, func() {
		if rand.Float64() <= 0.1 {
			return
		}
		EmitInsight(userID, alert)
	})
}
