package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/andrientheodore/Nutrichat/models"
	"github.com/andrientheodore/Nutrichat/utils"
)

const historyWindow = 10

// ErrSuperseded means a newer message for the same user arrived while this
// one was in flight; its reply is dropped instead of racing the newer turn.
var ErrSuperseded = errors.New("superseded by a newer message")

type chatTurn struct {
	Role string
	Text string
}

// ChatService orchestrates one chat turn: optional media classification,
// provider call with the tool schema, sequential tool execution, and the
// follow-up call for the final reply. Conversation history is held in memory
// per user; only meals and profile changes persist.
type ChatService struct {
	provider   *DeepSeekService
	classifier *GeminiService
	tools      *ToolExecutor
	telegram   *TelegramService

	mu         sync.Mutex
	history    map[uint][]chatTurn
	generation map[uint]uint64
}

func NewChatService(provider *DeepSeekService, classifier *GeminiService, tools *ToolExecutor, telegram *TelegramService) *ChatService {
	return &ChatService{
		provider:   provider,
		classifier: classifier,
		tools:      tools,
		telegram:   telegram,
		history:    make(map[uint][]chatTurn),
		generation: make(map[uint]uint64),
	}
}

func (s *ChatService) beginTurn(userID uint) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation[userID]++
	return s.generation[userID]
}

// appendIfCurrent records the turn only when no newer message for the user
// arrived while it was in flight. Check and append share one critical section
// so a turn beginning in between cannot interleave.
func (s *ChatService) appendIfCurrent(userID uint, gen uint64, turns ...chatTurn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation[userID] != gen {
		return false
	}
	s.history[userID] = append(s.history[userID], turns...)
	return true
}

func (s *ChatService) window(userID uint) []chatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.history[userID]
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}
	out := make([]chatTurn, len(turns))
	copy(out, turns)
	return out
}

// Reset drops a user's in-memory conversation (logout).
func (s *ChatService) Reset(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, userID)
}

// HandleMessage produces exactly one assistant-visible reply for the turn.
// Classification failures are annotated into the context and the turn
// continues; provider failures degrade to a synthetic error reply.
func (s *ChatService) HandleMessage(ctx context.Context, user *models.User, text, imageDataURI, audioDataURI string) (string, error) {
	gen := s.beginTurn(user.ID)

	go s.telegram.LogInput(text, imageDataURI, audioDataURI)

	if imageDataURI != "" {
		go func() {
			if url, err := utils.UploadMealPhoto(imageDataURI, fmt.Sprintf("user-%d", user.ID)); err == nil {
				log.Printf("Archived meal photo for user %d at %s", user.ID, url)
			}
		}()
	}

	messageContext := s.buildContext(text, imageDataURI, audioDataURI)

	contextMessages := make([]ChatMessage, 0, historyWindow+1)
	for _, t := range s.window(user.ID) {
		role := t.Role
		if role == "model" {
			role = "assistant"
		}
		contextMessages = append(contextMessages, ChatMessage{Role: role, Content: t.Text})
	}
	contextMessages = append(contextMessages, ChatMessage{Role: "user", Content: messageContext})

	today := DateString(time.Now())
	reply, err := s.converse(ctx, user, contextMessages, today)
	if err != nil {
		if errors.Is(err, ErrAPIKeyMissing) {
			reply = "AI Error: DeepSeek API Key is missing. Please check your settings."
		} else {
			log.Printf("Chat turn failed for user %d: %v", user.ID, err)
			reply = "AI Error: " + err.Error()
		}
	}

	ok := s.appendIfCurrent(user.ID, gen,
		chatTurn{Role: "user", Text: text},
		chatTurn{Role: "model", Text: reply},
	)
	if !ok {
		return "", ErrSuperseded
	}
	return reply, nil
}

// buildContext augments the user text with classifier output for any
// attached media. Failures are non-fatal markers.
func (s *ChatService) buildContext(text, imageDataURI, audioDataURI string) string {
	messageContext := text

	if imageDataURI != "" {
		analysis, err := s.classifier.AnalyzeImage(imageDataURI)
		if err != nil {
			log.Printf("Image analysis failed: %v", err)
			messageContext += "\n\n[System Error: Image analysis failed.]"
		} else {
			base := text
			if base == "" {
				base = "Analyze this food"
			}
			messageContext = fmt.Sprintf("%s\n\n[System: The user uploaded an image. Analysis]:\n%s", base, analysis)
		}
	}

	if audioDataURI != "" {
		analysis, err := s.classifier.AnalyzeAudio(audioDataURI)
		if err != nil {
			log.Printf("Audio analysis failed: %v", err)
			messageContext += "\n\n[System: Voice note analysis failed.]"
		} else {
			messageContext = fmt.Sprintf("[System: Voice note analysis]:\n%s", analysis)
		}
	}

	return messageContext
}

// converse performs the provider round trips: at most one pass of tool
// execution, then the final natural-language reply.
func (s *ChatService) converse(ctx context.Context, user *models.User, contextMessages []ChatMessage, today string) (string, error) {
	response, err := s.provider.SendMessage(ctx, contextMessages, user, today)
	if err != nil {
		return "", err
	}

	if len(response.ToolCalls) > 0 {
		followUp := make([]ChatMessage, 0, len(contextMessages)+len(response.ToolCalls)+1)
		followUp = append(followUp, contextMessages...)
		followUp = append(followUp, *response)

		for _, call := range response.ToolCalls {
			output := s.tools.Execute(user, call.Function.Name, call.Function.Arguments)
			followUp = append(followUp, ChatMessage{
				Role:       "tool",
				Content:    output,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
			})
		}

		response, err = s.provider.SendMessage(ctx, followUp, user, today)
		if err != nil {
			return "", err
		}
	}

	return response.Content, nil
}
