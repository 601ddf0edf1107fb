package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs every inbound Telegram update
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			err := next(c)

			fields := []zap.Field{
				zap.Int64("chat_id", c.Sender().ID),
				zap.Duration("took", time.Since(start)),
			}
			if err != nil {
				logger.Error("Update handling failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("Update handled", fields...)
			}

			return err
		}
	}
}
