package routes

import (
	"log"

	"github.com/andrientheodore/Nutrichat/config"
	"github.com/andrientheodore/Nutrichat/controllers"
	"github.com/andrientheodore/Nutrichat/middlewares"
	"github.com/andrientheodore/Nutrichat/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Shared services
	hub := services.NewRealtimeHub()
	services.InitAlertDeps(config.DB, hub)

	insights := services.NewInsightService()
	logs := services.NewFoodLogService()
	sheets := services.NewSheetsService()
	telegram := services.NewTelegramService()
	provider := services.NewDeepSeekService()
	classifier := services.NewGeminiService()

	sms, err := services.NewSMSService()
	if err != nil {
		log.Printf("SNS unavailable, OTP codes will be logged: %v", err)
		sms = nil
	}

	tools := services.NewToolExecutor(logs, insights, sheets)
	chat := services.NewChatService(provider, classifier, tools, telegram)
	advisor := services.NewAdvisorService(provider, logs)

	authCtrl := controllers.NewAuthController(services.NewAuthService(sms, insights))
	chatCtrl := controllers.NewChatController(chat)
	logCtrl := controllers.NewFoodLogController(logs)
	advisorCtrl := controllers.NewAdvisorController(advisor)
	rtCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/request-code", authCtrl.RequestCode)
		auth.POST("/verify", authCtrl.Verify)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)
		api.PUT("/user/wearables", controllers.UpdateWearables)
		api.PUT("/user/theme", controllers.UpdateTheme)

		api.POST("/chat/message", chatCtrl.SendMessage)
		api.POST("/chat/reset", chatCtrl.Reset)

		api.GET("/logs", logCtrl.ListLogs)
		api.POST("/logs", logCtrl.AddLog)
		api.PUT("/logs/:id", logCtrl.UpdateLog)
		api.DELETE("/logs/:id", logCtrl.DeleteLog)
		api.GET("/stats", logCtrl.GetStats)
		api.GET("/score", logCtrl.GetScore)
		api.GET("/report", logCtrl.GetReport)

		api.GET("/advice", advisorCtrl.GetAdvice)

		api.GET("/dashboard/layout", controllers.GetDashboardLayout)
		api.PUT("/dashboard/layout", controllers.SaveDashboardLayout)
		api.POST("/dashboard/layout/move", controllers.MoveDashboardItem)

		api.GET("/alerts", controllers.ListAlerts)
		api.GET("/ws/insights", rtCtrl.InsightsWS)
	}

	return r
}
