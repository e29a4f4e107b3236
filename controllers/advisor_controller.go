package controllers

import (
	"net/http"

	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

type AdvisorController struct {
	advisor *services.AdvisorService
}

func NewAdvisorController(advisor *services.AdvisorService) *AdvisorController {
	return &AdvisorController{advisor: advisor}
}

// GET /advice — today's nutrition review, cached per day.
func (a *AdvisorController) GetAdvice(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := services.GetProfileByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	advice, err := a.advisor.GetAdvice(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not generate advice at this time."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
