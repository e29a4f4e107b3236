package controllers

import (
	"net/http"
	"time"

	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

type FoodLogController struct {
	logs *services.FoodLogService
}

func NewFoodLogController(logs *services.FoodLogService) *FoodLogController {
	return &FoodLogController{logs: logs}
}

// GET /logs?date=YYYY-MM-DD (defaults to today)
func (f *FoodLogController) ListLogs(c *gin.Context) {
	userID := c.GetUint("userID")

	date := c.Query("date")
	if date == "" {
		date = services.DateString(time.Now())
	}

	entries, err := f.logs.ListByDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (f *FoodLogController) AddLog(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.FoodEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	entry, err := f.logs.Add(userID, input, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (f *FoodLogController) UpdateLog(c *gin.Context) {
	userID := c.GetUint("userID")
	uid := c.Param("id")

	var input services.FoodEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := f.logs.Update(userID, uid, input)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (f *FoodLogController) DeleteLog(c *gin.Context) {
	userID := c.GetUint("userID")
	uid := c.Param("id")

	if err := f.logs.Delete(userID, uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /stats?date=YYYY-MM-DD
func (f *FoodLogController) GetStats(c *gin.Context) {
	userID := c.GetUint("userID")

	date := c.Query("date")
	if date == "" {
		date = services.DateString(time.Now())
	}

	stats, count, err := f.logs.StatsForDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "stats": stats, "meals_logged": count})
}

// GET /report?date=YYYY-MM-DD — the day's stats plus its adherence score,
// the same shape the chat's report tool returns.
func (f *FoodLogController) GetReport(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := services.GetProfileByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = services.DateString(time.Now())
	}

	stats, count, err := f.logs.StatsForDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	score := services.AdherenceScore(stats.TotalCalories, stats.TotalProtein, user.CalorieTarget, user.ProteinTarget)
	c.JSON(http.StatusOK, gin.H{
		"date":         date,
		"stats":        stats,
		"meals_logged": count,
		"score":        score,
		"message":      services.ScoreMessage(score),
	})
}

// GET /score — today's adherence score against the profile targets.
func (f *FoodLogController) GetScore(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := services.GetProfileByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = services.DateString(time.Now())
	}

	stats, _, err := f.logs.StatsForDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	score := services.AdherenceScore(stats.TotalCalories, stats.TotalProtein, user.CalorieTarget, user.ProteinTarget)
	c.JSON(http.StatusOK, gin.H{
		"date":             date,
		"score":            score,
		"message":          services.ScoreMessage(score),
		"calorie_subscore": services.CalorieSubScore(stats.TotalCalories, user.CalorieTarget),
		"protein_subscore": services.ProteinSubScore(stats.TotalProtein, user.ProteinTarget),
	})
}
