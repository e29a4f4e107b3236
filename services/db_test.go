package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB swaps config.DB for an isolated in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.Alert{},
		&models.DashboardLayout{},
		&models.AdviceCache{},
		&models.AuthCode{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	config.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()
	user := &models.User{
		PhoneNumber:   phone,
		Name:          "User",
		CalorieTarget: 2200,
		ProteinTarget: 150,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}
