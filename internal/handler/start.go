package handler

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"timetracker/internal/api"
	"timetracker/internal/domain"
)

// handleStart handles /start: cached users go straight to the main menu,
// unknown identities are checked against the API and either greeted or sent
// through registration.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("user started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// /start abandons whatever flow was in progress: scratch data from the
	// old flow must not leak into the next one.
	h.sessions.Reset(userID)

	if _, known := h.sessions.Authorized(userID); known {
		h.sessions.SetState(userID, domain.StateMainMenu)
		return c.Send("Вы уже авторизовались\nМогу вам чем-то помочь?", mainMenuMarkup())
	}

	user, err := h.api.GetUser(context.Background(), userID, 0)
	switch {
	case err == nil:
		h.sessions.SetAuthorized(userID, user.IsAdmin)
		h.sessions.SetState(userID, domain.StateMainMenu)
		return c.Send(
			fmt.Sprintf("Привет, %s!\nМогу вам чем-то помочь?", senderName(c)),
			mainMenuMarkup(),
		)

	case api.IsUnauthorized(err):
		h.sessions.SetState(userID, domain.StateRegistrationUsername)
		return c.Send(
			fmt.Sprintf("Привет, %s!\nВы еще не авторизованы. Пройдите регистрацию.\nВведите ваш username", senderName(c)),
			removeMarkup(),
		)

	default:
		h.logger.Error("failed to fetch profile", zap.Int64("user_id", userID), zap.Error(err))
		// State stays unchanged so the next /start retries from scratch.
		return c.Send(h.errorText(err))
	}
}
