package api

import (
	"net/http"

	"finbot/internal/classifier"
	"finbot/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatRequest is the inbound message payload
type ChatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant's reply and classification details
type ChatResponse struct {
	Response   string  `json:"response"`
	SessionID  string  `json:"session_id"`
	Intent     string  `json:"intent,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Server exposes the dialog service over HTTP
type Server struct {
	dialog     *service.DialogService
	classifier classifier.Classifier
	logger     *zap.Logger
}

// NewServer creates the HTTP API server
func NewServer(dialog *service.DialogService, cls classifier.Classifier, logger *zap.Logger) *Server {
	return &Server{
		dialog:     dialog,
		classifier: cls,
		logger:     logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/chat", s.handleChat)
	router.GET("/health", s.handleHealth)
	router.GET("/intents", s.handleIntents)

	return router
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message are required"})
		return
	}

	reply := s.dialog.ProcessMessage(c.Request.Context(), req.UserID, req.Message)

	resp := ChatResponse{
		Response:   reply.Text,
		SessionID:  req.UserID,
		Intent:     reply.Intent,
		Confidence: reply.Confidence,
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "finbot",
	})
}

func (s *Server) handleIntents(c *gin.Context) {
	tags := s.classifier.Tags()
	c.JSON(http.StatusOK, gin.H{
		"intents": tags,
		"count":   len(tags),
	})
}
