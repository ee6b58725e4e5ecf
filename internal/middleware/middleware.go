// Package middleware provides telebot middleware shared by all handlers.
package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging logs every incoming update with the sender and message text.
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if sender := c.Sender(); sender != nil {
				logger.Debug("incoming update",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
					zap.String("text", c.Text()),
				)
			}
			return next(c)
		}
	}
}

// Recover turns a handler panic into a logged error so one bad update
// cannot take down the poller.
func Recover(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic", zap.Any("panic", r))
				}
			}()
			return next(c)
		}
	}
}
