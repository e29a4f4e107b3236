package controllers

import (
	"errors"
	"net/http"

	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

type chatMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"` // base64 data URI
	Audio string `json:"audio"` // base64 data URI
}

// POST /chat/message
func (cc *ChatController) SendMessage(c *gin.Context) {
	userID := c.GetUint("userID")

	var input chatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Text == "" && input.Image == "" && input.Audio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		return
	}

	user, err := services.GetProfileByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	reply, err := cc.chat.HandleMessage(c.Request.Context(), user, input.Text, input.Image, input.Audio)
	if err != nil {
		if errors.Is(err, services.ErrSuperseded) {
			c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer message"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// POST /chat/reset
func (cc *ChatController) Reset(c *gin.Context) {
	userID := c.GetUint("userID")
	cc.chat.Reset(userID)
	c.Status(http.StatusNoContent)
}
