package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/andrientheodore/Nutrichat/utils"
)

// The classifier must answer in this exact plain-text grammar so the chat
// model can pass a structured estimate along.
const analysisPrompt = `
Estimation method (internal only; do not output these steps)

Identify components: list the main foods based on the input (visual or audio description).
Choose references: map each component to a standard reference food.
Estimate volume/size: use visible objects for scale or context clues from description.
Convert to grams (densities, g/ml): meats 1.05; cooked rice 0.66; cooked pasta 0.60; potato/solid starchy veg 0.80; leafy salad 0.15; sauces creamy 1.00; oils 0.91.

Macros & energy per 100 g (reference values):
White rice, cooked: 130 kcal, P 2.7, C 28, F 0.3
Pasta, cooked: 131 kcal, P 5.0, C 25, F 1.1
Chicken breast, cooked skinless: 165 kcal, P 31, C 0, F 3.6
Salmon, cooked: 208 kcal, P 20, C 0, F 13
Lean ground beef, cooked: 217 kcal, P 26, C 0, F 12
Black beans, cooked: 132 kcal, P 8.9, C 23.7, F 0.5
Potato, baked: 93 kcal, P 2.5, C 21, F 0.1
Lettuce/leafy salad: 15 kcal, P 1.4, C 2.9, F 0.2
Avocado: 160 kcal, P 2, C 9, F 15
Bread (white): 265 kcal, P 9, C 49, F 3.2
Egg, cooked: 155 kcal, P 13, C 1.1, F 11
Cheddar cheese: 403 kcal, P 25, C 1.3, F 33
Olive oil: 884 kcal, P 0, C 0, F 100
(If a food is not listed, pick the closest standard equivalent.)

Hidden oil & sauces: if pan-fried or visibly glossy, add ~1 tablespoon oil = 120 kcal = 13.5 g fat per clearly coated serving.
Validation: enforce Calories = 4xProtein + 4xCarbs + 9xFat within 8%; adjust fat first, then carbs.
Rounding: round all final totals to integers. Never output ranges or decimals.

Output rules (must follow exactly)

Plain text only.
Use this exact structure and field order.
Values are numbers only (no units), no extra text, no JSON, no notes.

Meal Description: [short description]
Calories: [number]
Proteins: [number]
Carbs: [number]
Fat: [number]
`

var ErrGeminiKeyMissing = errors.New("gemini API key is missing")

// GeminiService classifies meal photos and voice notes into a structured
// macro estimate via the generateContent endpoint.
type GeminiService struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   "gemini-2.5-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
}

// SetBaseURL points the service at a different endpoint (tests).
func (g *GeminiService) SetBaseURL(base string) {
	g.baseURL = strings.TrimRight(base, "/")
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AnalyzeImage returns the structured meal estimate for a base64 data-URI
// image.
func (g *GeminiService) AnalyzeImage(dataURI string) (string, error) {
	mimeType, data, err := utils.ParseDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("invalid image format: %w", err)
	}
	return g.generate(mimeType, data, analysisPrompt)
}

// AnalyzeAudio runs the same classification for a voice note.
func (g *GeminiService) AnalyzeAudio(dataURI string) (string, error) {
	mimeType, data, err := utils.ParseDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("invalid audio format: %w", err)
	}
	// MediaRecorder uploads often arrive untyped
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = "audio/webm"
	}
	return g.generate(mimeType, data, "Analyze this voice note describing a meal. "+analysisPrompt)
}

func (g *GeminiService) generate(mimeType, base64Data, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrGeminiKeyMissing
	}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64Data}},
				{Text: prompt},
			},
		}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	resp, err := g.client.Post(u, "application/json", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("failed to parse gemini JSON: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(gr.Error.Message)
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, msg)
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no content")
	}
	return strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text), nil
}
