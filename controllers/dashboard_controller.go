package controllers

import (
	"net/http"

	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

func GetDashboardLayout(c *gin.Context) {
	userID := c.GetUint("userID")

	items, err := services.GetDashboardLayout(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type layoutInput struct {
	Items []string `json:"items" binding:"required"`
}

func SaveDashboardLayout(c *gin.Context) {
	userID := c.GetUint("userID")

	var input layoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SaveDashboardLayout(userID, input.Items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type moveInput struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// POST /dashboard/layout/move — drag-reorder: move the widget at From to To.
func MoveDashboardItem(c *gin.Context) {
	userID := c.GetUint("userID")

	var input moveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := services.GetDashboardLayout(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items = services.MoveDashboardItem(items, input.From, input.To)
	if err := services.SaveDashboardLayout(userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
