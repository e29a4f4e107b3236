package services

import (
	"testing"
	"time"
)

func TestFoodLogAddAndStats(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550010")
	svc := NewFoodLogService()

	now := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	today := DateString(now)

	_, err := svc.Add(user.ID, FoodEntryInput{
		Name: "Oatmeal", Calories: 300, Protein: 10, Carbs: 50, Fat: 5,
	}, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	entry, err := svc.Add(user.ID, FoodEntryInput{
		Name: "Chicken Salad", Quantity: "1 bowl",
		Calories: 450, Protein: 40, Carbs: 20, Fat: 22,
	}, now.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.UID == "" {
		t.Fatal("entry should get a client-visible uid")
	}

	stats, count, err := svc.StatsForDate(user.ID, today)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 meals, got %d", count)
	}
	if stats.TotalCalories != 750 || stats.TotalProtein != 50 ||
		stats.TotalCarbs != 70 || stats.TotalFat != 27 {
		t.Fatalf("unexpected aggregate: %+v", stats)
	}

	// Deleting one entry changes the aggregate by exactly its macros.
	if err := svc.Delete(user.ID, entry.UID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stats, count, err = svc.StatsForDate(user.ID, today)
	if err != nil {
		t.Fatalf("stats after delete: %v", err)
	}
	if count != 1 || stats.TotalCalories != 300 || stats.TotalProtein != 10 {
		t.Fatalf("aggregate not updated after delete: %+v (%d meals)", stats, count)
	}
}

func TestFoodLogDefaultQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550011")
	svc := NewFoodLogService()

	entry, err := svc.Add(user.ID, FoodEntryInput{Name: "Apple", Calories: 95}, time.Now())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.Quantity != "1 serving" {
		t.Fatalf("expected default quantity, got %q", entry.Quantity)
	}
}

func TestFoodLogDateIsolation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550012")
	svc := NewFoodLogService()

	day1 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	if _, err := svc.Add(user.ID, FoodEntryInput{Name: "Toast", Calories: 200}, day1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(user.ID, FoodEntryInput{Name: "Eggs", Calories: 180}, day2); err != nil {
		t.Fatalf("add: %v", err)
	}

	stats, count, err := svc.StatsForDate(user.ID, DateString(day1))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 || stats.TotalCalories != 200 {
		t.Fatalf("entries leaked across dates: %+v (%d meals)", stats, count)
	}
}

func TestFoodLogUpdateScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "+12025550013")
	other := createTestUser(t, db, "+12025550014")
	svc := NewFoodLogService()

	entry, err := svc.Add(owner.ID, FoodEntryInput{Name: "Rice", Calories: 250, Carbs: 55}, time.Now())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.Update(other.ID, entry.UID, FoodEntryInput{Calories: 1}); err == nil {
		t.Fatal("another user must not be able to update the entry")
	}

	updated, err := svc.Update(owner.ID, entry.UID, FoodEntryInput{
		Name: "Brown Rice", Calories: 230, Carbs: 48,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Brown Rice" || updated.Calories != 230 {
		t.Fatalf("update not applied: %+v", updated)
	}
}
