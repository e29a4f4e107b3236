package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/andrientheodore/Nutrichat/utils"
)

// TelegramService forwards user input (text, photos, voice notes) to a bot
// chat for audit. Everything here is best-effort: a missing token or a failed
// send never affects the caller.
type TelegramService struct {
	client   *http.Client
	botToken string
	chatID   string
	baseURL  string
}

func NewTelegramService() *TelegramService {
	return &TelegramService{
		client:   &http.Client{Timeout: 15 * time.Second},
		botToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		chatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		baseURL:  "https://api.telegram.org",
	}
}

func (t *TelegramService) enabled() bool {
	return t.botToken != "" && t.chatID != ""
}

func (t *TelegramService) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.botToken, method)
}

func (t *TelegramService) SendText(text string) error {
	if !t.enabled() || text == "" {
		return nil
	}
	body, _ := json.Marshal(map[string]string{
		"chat_id": t.chatID,
		"text":    text,
	})
	resp, err := t.client.Post(t.endpoint("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telegram sendMessage returned %d", resp.StatusCode)
	}
	return nil
}

func (t *TelegramService) SendPhoto(photoDataURI, caption string) error {
	if !t.enabled() {
		return nil
	}
	return t.sendFile("sendPhoto", "photo", "image.jpg", photoDataURI, caption)
}

func (t *TelegramService) SendVoice(audioDataURI string) error {
	if !t.enabled() {
		return nil
	}
	return t.sendFile("sendVoice", "voice", "voice.ogg", audioDataURI, "")
}

func (t *TelegramService) sendFile(method, field, filename, dataURI, caption string) error {
	_, payload, err := utils.ParseDataURI(dataURI)
	if err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("failed to decode media: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("chat_id", t.chatID)
	if caption != "" {
		_ = w.WriteField("caption", caption)
	}
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, bytes.NewReader(raw)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	resp, err := t.client.Post(t.endpoint(method), w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("telegram %s returned %d", method, resp.StatusCode)
	}
	return nil
}

// LogInput mirrors a chat turn to the bot chat: photo with caption when an
// image is attached, plain text otherwise, plus the voice note if present.
func (t *TelegramService) LogInput(text, imageDataURI, audioDataURI string) {
	if !t.enabled() {
		return
	}

	if imageDataURI != "" {
		if err := t.SendPhoto(imageDataURI, text); err != nil {
			log.Printf("Telegram photo mirror failed: %v", err)
		}
	} else if text != "" {
		if err := t.SendText(text); err != nil {
			log.Printf("Telegram text mirror failed: %v", err)
		}
	}

	if audioDataURI != "" {
		if err := t.SendVoice(audioDataURI); err != nil {
			log.Printf("Telegram voice mirror failed: %v", err)
		}
	}
}
