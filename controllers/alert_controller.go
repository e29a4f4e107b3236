package controllers

import (
	"net/http"
	"strconv"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

// GET /alerts?limit=N — recent insight alerts, newest first.
func ListAlerts(c *gin.Context) {
	userID := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.Query("limit"))

	alerts, err := services.ListAlerts(config.DB, userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
