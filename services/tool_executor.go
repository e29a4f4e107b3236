package services

import (
	"encoding/json"
	"time"

	"github.com/andrientheodore/Nutrichat/models"
)

// ToolExecutor dispatches the provider's tool-call requests against local
// state. Every branch returns a JSON string; unknown tools yield a structured
// error payload rather than an error.
type ToolExecutor struct {
	logs     *FoodLogService
	insights *InsightService
	sheets   *SheetsService
	now      func() time.Time
}

func NewToolExecutor(logs *FoodLogService, insights *InsightService, sheets *SheetsService) *ToolExecutor {
	return &ToolExecutor{
		logs:     logs,
		insights: insights,
		sheets:   sheets,
		now:      time.Now,
	}
}

// SyncStatus reports each sink's outcome explicitly so callers can choose to
// surface, queue, or ignore failures.
type SyncStatus struct {
	Datastore string `json:"datastore"`
	Sheets    string `json:"sheets"`
}

type appendMealArgs struct {
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

type updateProfileArgs struct {
	Name          *string  `json:"name"`
	CalorieTarget *float64 `json:"calorieTarget"`
	ProteinTarget *float64 `json:"proteinTarget"`
}

type getReportArgs struct {
	Date string `json:"date"`
}

func (e *ToolExecutor) Execute(user *models.User, name, argsJSON string) string {
	switch name {
	case "appendMealData":
		return e.appendMeal(user, argsJSON)
	case "updateProfileData":
		return e.updateProfile(user, argsJSON)
	case "getUserData":
		return mustJSON(ProfileView(user))
	case "getReport":
		return e.report(user, argsJSON)
	default:
		return mustJSON(map[string]string{"error": "Tool not found"})
	}
}

func (e *ToolExecutor) appendMeal(user *models.User, argsJSON string) string {
	var args appendMealArgs
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return mustJSON(map[string]string{"error": "invalid appendMealData arguments"})
	}

	sync := SyncStatus{Datastore: "ok", Sheets: "skipped"}

	entry, err := e.logs.Add(user.ID, FoodEntryInput{
		Name:     args.Description,
		Quantity: "1 serving",
		Calories: args.Calories,
		Protein:  args.Protein,
		Carbs:    args.Carbs,
		Fat:      args.Fat,
	}, e.now())
	if err != nil {
		return mustJSON(map[string]string{"error": "failed to store meal: " + err.Error()})
	}

	e.insights.CheckBehavioralPatterns(user.ID, entry.Name)

	if user.SheetsWebhookURL != "" {
		if err := e.sheets.LogMeal(user.SheetsWebhookURL, entry); err != nil {
			sync.Sheets = err.Error()
		} else {
			sync.Sheets = "ok"
		}
	}

	return mustJSON(map[string]any{
		"success": true,
		"message": "Meal logged successfully",
		"id":      entry.UID,
		"sync":    sync,
	})
}

func (e *ToolExecutor) updateProfile(user *models.User, argsJSON string) string {
	var args updateProfileArgs
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return mustJSON(map[string]string{"error": "invalid updateProfileData arguments"})
	}

	updated, err := UpdateProfile(user.ID, ProfileInput{
		Name:          args.Name,
		CalorieTarget: args.CalorieTarget,
		ProteinTarget: args.ProteinTarget,
	})
	if err != nil {
		return mustJSON(map[string]string{"error": "failed to update profile: " + err.Error()})
	}
	*user = *updated

	return mustJSON(map[string]any{"success": true, "message": "Profile updated"})
}

func (e *ToolExecutor) report(user *models.User, argsJSON string) string {
	var args getReportArgs
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return mustJSON(map[string]string{"error": "invalid getReport arguments"})
	}
	date := args.Date
	if date == "" {
		date = DateString(e.now())
	}

	stats, count, err := e.logs.StatsForDate(user.ID, date)
	if err != nil {
		return mustJSON(map[string]string{"error": "failed to build report: " + err.Error()})
	}

	return mustJSON(map[string]any{
		"date":        date,
		"stats":       stats,
		"mealsLogged": count,
		"score":       AdherenceScore(stats.TotalCalories, stats.TotalProtein, user.CalorieTarget, user.ProteinTarget),
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"internal encoding failure"}`
	}
	return string(b)
}
