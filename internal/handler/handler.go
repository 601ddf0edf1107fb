package handler

import (
	"context"
	"fmt"
	"strings"

	"finbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler routes Telegram messages into the dialog service
type Handler struct {
	bot    *tele.Bot
	dialog *service.DialogService
	logger *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, dialog *service.DialogService, logger *zap.Logger) *Handler {
	return &Handler{
		bot:    bot,
		dialog: dialog,
		logger: logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleText)
	h.bot.Handle(tele.OnText, h.handleText)
}

// handleText feeds any inbound text through the dialog state machine.
// The /start command is treated as an ordinary utterance: a fresh
// session greets the user regardless of the text.
func (h *Handler) handleText(c tele.Context) error {
	userID := UserID(c.Sender().ID)
	text := strings.TrimSpace(c.Text())

	reply := h.dialog.ProcessMessage(context.Background(), userID, text)

	if reply.Intent != "" {
		h.logger.Debug("Message classified",
			zap.String("user_id", userID),
			zap.String("intent", reply.Intent),
			zap.Float64("confidence", reply.Confidence),
		)
	}

	return c.Send(reply.Text)
}

// UserID maps a Telegram chat ID into the dialog user ID namespace,
// keeping Telegram users distinct from REST API users
func UserID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}
