package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newStubProvider(t *testing.T, handler http.HandlerFunc) (*DeepSeekService, *httptest.Server) {
	t.Helper()
	t.Setenv("DEEPSEEK_API_KEY", "test-key")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	provider := NewDeepSeekService()
	provider.SetBaseURL(srv.URL)
	return provider, srv
}

func newTestChatService(t *testing.T, handler http.HandlerFunc) *ChatService {
	t.Helper()
	provider, _ := newStubProvider(t, handler)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	exec := NewToolExecutor(NewFoodLogService(), NewInsightService(), NewSheetsService())
	return NewChatService(provider, NewGeminiService(), exec, NewTelegramService())
}

func assistantReply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{
			"message": map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestHandleMessagePlainReply(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550040")

	var requests []chatCompletionRequest
	chat := newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		requests = append(requests, req)
		w.Write([]byte(assistantReply("Keep it up!")))
	})

	reply, err := chat.HandleMessage(context.Background(), user, "how am I doing?", "", "")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if reply != "Keep it up!" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if len(requests) != 1 {
		t.Fatalf("expected one provider call, got %d", len(requests))
	}
	first := requests[0]
	if first.Messages[0].Role != "system" || !strings.Contains(first.Messages[0].Content, "Cal AI") {
		t.Fatalf("system prompt missing: %+v", first.Messages[0])
	}
	if len(first.Tools) != 4 {
		t.Fatalf("expected the four-tool schema, got %d tools", len(first.Tools))
	}

	// Next turn carries the prior exchange as history.
	if _, err := chat.HandleMessage(context.Background(), user, "thanks", "", ""); err != nil {
		t.Fatalf("handle: %v", err)
	}
	second := requests[1]
	var roles []string
	for _, m := range second.Messages {
		roles = append(roles, m.Role)
	}
	want := []string{"system", "user", "assistant", "user"}
	if strings.Join(roles, ",") != strings.Join(want, ",") {
		t.Fatalf("history not replayed: %v", roles)
	}
}

func TestHandleMessageToolRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550041")

	calls := 0
	var followUp chatCompletionRequest
	chat := newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			b, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{{
					"message": map[string]any{
						"role":    "assistant",
						"content": "",
						"tool_calls": []map[string]any{{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      "appendMealData",
								"arguments": `{"description":"Chicken Wrap","calories":430,"protein":32,"carbs":40,"fat":14}`,
							},
						}},
					},
				}},
			})
			w.Write(b)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&followUp)
		w.Write([]byte(assistantReply("Logged your chicken wrap. 430 kcal, 32g protein. Keep going!")))
	})

	reply, err := chat.HandleMessage(context.Background(), user, "I ate a chicken wrap", "", "")
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly one tool round trip, got %d provider calls", calls)
	}
	if !strings.Contains(reply, "chicken wrap") {
		t.Fatalf("unexpected reply %q", reply)
	}

	// The follow-up request carries the assistant tool-call message and the
	// tool result.
	var sawToolResult bool
	for _, m := range followUp.Messages {
		if m.Role == "tool" && m.Name == "appendMealData" && m.ToolCallID == "call_1" {
			sawToolResult = true
			if !strings.Contains(m.Content, `"success":true`) {
				t.Fatalf("tool result not forwarded: %q", m.Content)
			}
		}
	}
	if !sawToolResult {
		t.Fatalf("no tool message in follow-up: %+v", followUp.Messages)
	}

	// The meal actually persisted.
	entries, err := NewFoodLogService().ListByDate(user.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Chicken Wrap" {
		t.Fatalf("meal not stored: %+v", entries)
	}
}

func TestHandleMessageMissingKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550042")

	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	exec := NewToolExecutor(NewFoodLogService(), NewInsightService(), NewSheetsService())
	chat := NewChatService(NewDeepSeekService(), NewGeminiService(), exec, NewTelegramService())

	reply, err := chat.HandleMessage(context.Background(), user, "hello", "", "")
	if err != nil {
		t.Fatalf("missing key should degrade to a reply, got error %v", err)
	}
	if !strings.Contains(reply, "DeepSeek API Key is missing") {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestHandleMessageSuperseded(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550043")

	var chat *ChatService
	chat = newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		// A newer message lands while this turn is still at the provider.
		chat.beginTurn(user.ID)
		w.Write([]byte(assistantReply("too late")))
	})

	_, err := chat.HandleMessage(context.Background(), user, "first", "", "")
	if err != ErrSuperseded {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}

	// The superseded turn must not pollute history.
	if turns := chat.window(user.ID); len(turns) != 0 {
		t.Fatalf("stale turn appended to history: %+v", turns)
	}
}

func TestAppendIfCurrentRejectsStaleGeneration(t *testing.T) {
	setupTestDB(t)
	chat := newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(assistantReply("ok")))
	})

	older := chat.beginTurn(1)
	newer := chat.beginTurn(1)

	// The check and the append share one lock, so a stale turn can never
	// slip its history in after a newer turn has begun.
	if chat.appendIfCurrent(1, older, chatTurn{Role: "user", Text: "stale"}) {
		t.Fatal("stale generation must not append")
	}
	if len(chat.window(1)) != 0 {
		t.Fatalf("history polluted: %+v", chat.window(1))
	}

	if !chat.appendIfCurrent(1, newer, chatTurn{Role: "user", Text: "fresh"}) {
		t.Fatal("current generation must append")
	}
	if turns := chat.window(1); len(turns) != 1 || turns[0].Text != "fresh" {
		t.Fatalf("unexpected history: %+v", turns)
	}
}

func TestHandleMessageAudioAnnotationFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550045")

	var seen string
	chat := newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		seen = req.Messages[len(req.Messages)-1].Content
		w.Write([]byte(assistantReply("Noted")))
	})

	// Classifier has no API key, so the voice note can't be analyzed; the
	// turn degrades to a marker instead of failing.
	reply, err := chat.HandleMessage(context.Background(), user,
		"", "", "data:audio/webm;base64,AAAA")
	if err != nil {
		t.Fatalf("audio analysis failure must be non-fatal: %v", err)
	}
	if reply != "Noted" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if !strings.Contains(seen, "[System: Voice note analysis failed.]") {
		t.Fatalf("context missing failure marker: %q", seen)
	}
}

func TestHandleMessageImageAnnotationFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "+12025550044")

	var seen string
	chat := newTestChatService(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		seen = req.Messages[len(req.Messages)-1].Content
		w.Write([]byte(assistantReply("Got it")))
	})

	// Classifier has no API key, so image analysis fails; the turn continues
	// with an error marker in the context.
	reply, err := chat.HandleMessage(context.Background(), user,
		"my lunch", "data:image/jpeg;base64,AAAA", "")
	if err != nil {
		t.Fatalf("classification failure must be non-fatal: %v", err)
	}
	if reply != "Got it" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if !strings.Contains(seen, "my lunch") || !strings.Contains(seen, "[System Error: Image analysis failed.]") {
		t.Fatalf("context missing failure marker: %q", seen)
	}
}

func TestChatHistoryWindowAndReset(t *testing.T) {
	setupTestDB(t)
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	exec := NewToolExecutor(NewFoodLogService(), NewInsightService(), NewSheetsService())
	chat := NewChatService(NewDeepSeekService(), NewGeminiService(), exec, NewTelegramService())

	gen := chat.beginTurn(1)
	for i := 0; i < 8; i++ {
		chat.appendIfCurrent(1, gen, chatTurn{Role: "user", Text: "q"}, chatTurn{Role: "model", Text: "a"})
	}
	if got := len(chat.window(1)); got != historyWindow {
		t.Fatalf("window should cap at %d turns, got %d", historyWindow, got)
	}

	chat.Reset(1)
	if got := len(chat.window(1)); got != 0 {
		t.Fatalf("reset should clear history, got %d turns", got)
	}
}
