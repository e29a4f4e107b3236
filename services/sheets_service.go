package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andrientheodore/Nutrichat/models"
)

// SheetsService mirrors meal rows to a user-supplied spreadsheet webhook
// (typically a Google Apps Script web app endpoint).
type SheetsService struct {
	client *http.Client
}

func NewSheetsService() *SheetsService {
	return &SheetsService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SheetsService) LogMeal(scriptURL string, entry *models.FoodEntry) error {
	if scriptURL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"date":     time.Now().Format(time.RFC3339),
		"name":     entry.Name,
		"calories": entry.Calories,
		"protein":  entry.Protein,
		"carbs":    entry.Carbs,
		"fat":      entry.Fat,
		"quantity": entry.Quantity,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := s.client.Post(scriptURL, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("sheets webhook failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sheets webhook returned %d", resp.StatusCode)
	}
	return nil
}
