package http

import (
	"github.com/gin-gonic/gin"

	"edubot/internal/bootstrap"
	"edubot/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", handler.NewHealthHandler(app).Check)
	registerChatbotRoutes(router, handler.NewAssistantHandler(app.Assistant, app.Config.RefreshTimeout()))
	return router
}

func registerChatbotRoutes(router gin.IRouter, h *handler.AssistantHandler) {
	chatbot := router.Group("/api/v1/chatbot")
	chatbot.POST("/query", h.Query)
	chatbot.POST("/refresh-knowledge", h.RefreshKnowledge)
	chatbot.GET("/suggest-queries", h.SuggestQueries)
	chatbot.POST("/feedback", h.Feedback)
	chatbot.GET("/index/stats", h.IndexStats)
}
