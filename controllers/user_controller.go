package controllers

import (
	"net/http"

	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := services.GetProfileByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(user))
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateProfile(userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services.ProfileView(user))
}

type wearablesInput struct {
	HasOura        bool `json:"has_oura"`
	HasAppleHealth bool `json:"has_apple_health"`
	HasCGM         bool `json:"has_cgm"`
}

func UpdateWearables(c *gin.Context) {
	userID := c.GetUint("userID")

	var input wearablesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateWearables(userID, input.HasOura, input.HasAppleHealth, input.HasCGM); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type themeInput struct {
	DarkMode bool `json:"dark_mode"`
}

func UpdateTheme(c *gin.Context) {
	userID := c.GetUint("userID")

	var input themeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateTheme(userID, input.DarkMode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
