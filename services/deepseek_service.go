package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andrientheodore/Nutrichat/models"
	"github.com/andrientheodore/Nutrichat/utils"
)

var ErrAPIKeyMissing = errors.New("DeepSeek API key is missing")

// ChatMessage is the OpenAI-compatible wire shape shared by requests and
// responses. Content stays a plain string; the provider rejects null content
// for user, system and tool roles.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON-encoded argument object
}

type toolSchema struct {
	Type     string         `json:"type"`
	Function functionSchema `json:"function"`
}

type functionSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// The static four-function schema the coach can call.
var chatTools = []toolSchema{
	{
		Type: "function",
		Function: functionSchema{
			Name:        "appendMealData",
			Description: "Store a meal row in the logs after analyzing food input.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"description": map[string]any{"type": "string", "description": "Short description of the meal"},
					"calories":    map[string]any{"type": "number"},
					"protein":     map[string]any{"type": "number"},
					"carbs":       map[string]any{"type": "number"},
					"fat":         map[string]any{"type": "number"},
				},
				"required": []string{"description", "calories", "protein", "carbs", "fat"},
			},
		},
	},
	{
		Type: "function",
		Function: functionSchema{
			Name:        "updateProfileData",
			Description: "Update the user's profile targets.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":          map[string]any{"type": "string"},
					"calorieTarget": map[string]any{"type": "number"},
					"proteinTarget": map[string]any{"type": "number"},
				},
			},
		},
	},
	{
		Type: "function",
		Function: functionSchema{
			Name:        "getUserData",
			Description: "Fetch the user's current profile info.",
		},
	},
	{
		Type: "function",
		Function: functionSchema{
			Name:        "getReport",
			Description: "Generate or fetch the daily report.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{"type": "string", "description": "YYYY-MM-DD"},
				},
				"required": []string{"date"},
			},
		},
	},
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []toolSchema  `json:"tools,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// DeepSeekService talks to the chat provider's OpenAI-compatible completions
// endpoint.
type DeepSeekService struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewDeepSeekService() *DeepSeekService {
	return &DeepSeekService{
		client:  &http.Client{Timeout: 120 * time.Second},
		apiKey:  os.Getenv("DEEPSEEK_API_KEY"),
		model:   "deepseek-chat",
		baseURL: "https://api.deepseek.com/v1",
	}
}

func (s *DeepSeekService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(base, "/")
}

func coachSystemPrompt(profile *models.User, today string) string {
	profileJSON, _ := json.Marshal(ProfileView(profile))
	return fmt.Sprintf(`You are Cal AI, a friendly fitness coach and nutrition orchestrator.
Guide the user with motivation, clarity, and precision while managing their nutrition data. Speak in a supportive, energetic tone like a personal trainer.

You have four tools available:
1. appendMealData -> store a meal row.
2. updateProfileData -> update the user's profile targets.
3. getUserData -> fetch the user's profile info.
4. getReport -> generate or fetch the daily report.

Rules:
Image and voice analysis is done before reaching you (passed as text context if available). You will always receive structured info if the user provides food data.

When analyzing a meal:
1. Call appendMealData.
2. After success, confirm naturally in a coach style (repeat the macros).
3. End with a motivational phrase.

Profile update logic:
- Call getUserData first.
- Compare and call updateProfileData with ONLY changed fields.
- Confirm to user.

Current Date: %s
Current User Profile: %s`, today, profileJSON)
}

// SendMessage sends the conversation plus the coach system prompt and the
// static tool schema, returning the assistant message (which may carry tool
// calls instead of content).
func (s *DeepSeekService) SendMessage(ctx context.Context, messages []ChatMessage, profile *models.User, today string) (*ChatMessage, error) {
	conversation := make([]ChatMessage, 0, len(messages)+1)
	conversation = append(conversation, ChatMessage{
		Role:    "system",
		Content: coachSystemPrompt(profile, today),
	})
	conversation = append(conversation, messages...)

	return s.complete(ctx, chatCompletionRequest{
		Model:       s.model,
		Messages:    conversation,
		Tools:       chatTools,
		Temperature: 0.7,
	})
}

// GetNutritionAdvice produces the daily advisor text from the profile,
// today's totals and the logged meals. No tools are offered here.
func (s *DeepSeekService) GetNutritionAdvice(ctx context.Context, profile *models.User, stats DailyStats, entries []models.FoodEntry) (string, error) {
	var meals strings.Builder
	if len(entries) == 0 {
		meals.WriteString("No meals logged yet.")
	} else {
		for _, e := range entries {
			fmt.Fprintf(&meals, "- %s (%.0f kcal, P:%.0fg)\n", e.Name, e.Calories, e.Protein)
		}
	}

	describe := func(v float64, unit string) string {
		if v <= 0 {
			return "Not specified"
		}
		return fmt.Sprintf("%.0f %s", v, unit)
	}
	age := "Not specified"
	if profile.Age > 0 {
		age = fmt.Sprintf("%d years", profile.Age)
	}
	gender := profile.Gender
	if gender == "" {
		gender = "Not specified"
	}
	bmiLine := "Not available (weight/height missing)"
	if bmi, err := utils.CalculateBMI(profile.Height, profile.Weight); err == nil {
		bmiLine = fmt.Sprintf("%.1f (%s)", bmi, utils.BMICategory(bmi))
	}

	prompt := fmt.Sprintf(`You are a world-class Nutritionist Advisor.

User Profile:
- Name: %s
- Age: %s
- Gender: %s
- Height: %s
- Weight: %s
- BMI: %s
- Goals: %.0f kcal/day, %.0fg protein/day.

Today's Status:
- Consumed: %.0f kcal
- Protein: %.0fg
- Carbs: %.0fg
- Fat: %.0fg

Meals Logged Today:
%s

Task:
Provide a personalized nutritional analysis (approx. 200 words) incorporating their biometrics.

Requirements:
1. BMR & TDEE Context: If age, weight, height and gender are provided, calculate BMR (Mifflin-St Jeor) and estimate TDEE (assume sedentary x1.2 if unknown). Compare intake/goals to these baselines.
2. Macro Analysis: Analyze protein intake relative to body weight (~1.6-2.2g/kg for active individuals) when known.
3. Status & Adjustments: Are they on track? What macronutrient needs adjustment?
4. Actionable Advice: One concrete food recommendation or habit change.

Output Format (Markdown):
**Biological Baseline**: [BMR/TDEE comparison, or ask for weight/height]
**Daily Analysis**: [Status check and macro split observation]
**Coach's Recommendation**: [Actionable advice]

Tone: Professional, encouraging, and data-driven.`,
		profile.Name, age, gender,
		describe(profile.Height, "cm"), describe(profile.Weight, "kg"),
		bmiLine,
		profile.CalorieTarget, profile.ProteinTarget,
		stats.TotalCalories, stats.TotalProtein, stats.TotalCarbs, stats.TotalFat,
		meals.String())

	msg, err := s.complete(ctx, chatCompletionRequest{
		Model:       s.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (s *DeepSeekService) complete(ctx context.Context, payload chatCompletionRequest) (*ChatMessage, error) {
	if s.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	endpoint := s.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to parse chat JSON: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(completion.Error.Message)
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return nil, fmt.Errorf("chat API error %d: %s", resp.StatusCode, msg)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("chat API returned no choices")
	}
	msg := completion.Choices[0].Message
	return &msg, nil
}
