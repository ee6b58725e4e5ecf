package handler

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"timetracker/internal/domain"
	"timetracker/internal/format"
	"timetracker/internal/parser"
)

const badSelectorPrompt = "Не удалось распознать пользователя. Выберите пользователя кнопкой ниже."

// handleSelectUserInfo shows the profile of the user picked from the selector.
func (h *Handler) handleSelectUserInfo(c tele.Context) error {
	userID := c.Sender().ID

	targetID, ok := parser.UserID(c.Text())
	if !ok {
		return c.Send(badSelectorPrompt)
	}

	user, err := h.api.GetUser(context.Background(), userID, targetID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, format.User(user))
}

// handleUpdateSelf submits the parsed partial update for the caller.
func (h *Handler) handleUpdateSelf(c tele.Context) error {
	userID := c.Sender().ID

	upd := parser.SelfUpdate(c.Text())
	user, err := h.api.UpdateSelf(context.Background(), userID, upd)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, "Успех! Новые данные в базе:\n"+format.User(user))
}

// handleAdminUpdateUser remembers the edit target and asks for the fields.
func (h *Handler) handleAdminUpdateUser(c tele.Context) error {
	userID := c.Sender().ID

	targetID, ok := parser.UserID(c.Text())
	if !ok {
		return c.Send(badSelectorPrompt)
	}

	h.sessions.SetData(userID, dataTargetID, strconv.FormatInt(targetID, 10))
	h.sessions.SetState(userID, domain.StateAdminUpdateFields)
	return c.Send(updateAdminPrompt, removeMarkup())
}

// handleAdminUpdateFields submits the parsed partial update for the target
// stored one step earlier.
func (h *Handler) handleAdminUpdateFields(c tele.Context) error {
	userID := c.Sender().ID

	raw, ok := h.sessions.Data(userID, dataTargetID)
	if !ok {
		return h.fail(c, errMissingTarget)
	}
	targetID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return h.fail(c, err)
	}

	upd := parser.AdminUpdate(c.Text())
	user, err := h.api.UpdateByAdmin(context.Background(), userID, targetID, upd)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, "Успешное редактирование:\n"+format.User(user))
}

// handleAdminDeleteUser soft-deletes the user picked from the selector.
func (h *Handler) handleAdminDeleteUser(c tele.Context) error {
	userID := c.Sender().ID

	targetID, ok := parser.UserID(c.Text())
	if !ok {
		return c.Send(badSelectorPrompt)
	}

	reply, err := h.api.DeleteUser(context.Background(), userID, targetID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, reply+"\nЧто-то еще?")
}
