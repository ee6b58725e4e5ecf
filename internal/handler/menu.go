package handler

import (
	"context"

	tele "gopkg.in/telebot.v3"

	"timetracker/internal/domain"
	"timetracker/internal/format"
)

const updateSelfPrompt = "Выберите какие поля хотите обновить в следующем порядке " +
	"(если не хотите менять поле, просто '0'). Поля надо писать через Enter\n" +
	"Фамилия\n" +
	"Имя\n" +
	"Отчество\n" +
	"Email"

const updateAdminPrompt = "Выберите какие поля хотите обновить в следующем порядке " +
	"(если не хотите менять поле, просто '0'). Поля надо писать через Enter\n" +
	"Фамилия\n" +
	"Имя\n" +
	"Отчество\n" +
	"Email\n" +
	"Логин\n" +
	"Является администратором (Да/Нет)"

// handleMainMenu dispatches a main menu choice to its sub-flow.
func (h *Handler) handleMainMenu(c tele.Context) error {
	if fn, ok := h.menu[c.Text()]; ok {
		return fn(c)
	}
	return c.Send("Чет вы ошиблись. Введите корректную команду.", mainMenuMarkup())
}

func (h *Handler) openTimeControl(c tele.Context) error {
	h.sessions.SetState(c.Sender().ID, domain.StateTimeControlMenu)
	return c.Send("Это раздел учета времени сотрудников. Выберите действие", timeControlMarkup())
}

func (h *Handler) openObjects(c tele.Context) error {
	h.sessions.SetState(c.Sender().ID, domain.StateObjectMenu)
	return c.Send("Это раздел отчетов объектов. Выберите действие", objectMenuMarkup())
}

func (h *Handler) openUpdateSelf(c tele.Context) error {
	h.sessions.SetState(c.Sender().ID, domain.StateUpdateSelf)
	return c.Send(updateSelfPrompt, removeMarkup())
}

func (h *Handler) openUserInfo(c tele.Context) error {
	return h.openUserSelector(c, domain.StateSelectUserInfo)
}

func (h *Handler) openAdminUpdate(c tele.Context) error {
	return h.openUserSelector(c, domain.StateAdminUpdateUser)
}

func (h *Handler) openAdminDelete(c tele.Context) error {
	return h.openUserSelector(c, domain.StateAdminDeleteUser)
}

// openUserSelector fetches the user list and renders it as a selector
// keyboard, moving the session into the given waiting-for-selection state.
func (h *Handler) openUserSelector(c tele.Context, next domain.UserState) error {
	userID := c.Sender().ID

	users, err := h.api.ListUsers(context.Background(), userID, false)
	if err != nil {
		return h.fail(c, err)
	}

	h.sessions.SetState(userID, next)
	return c.Send("Выберите пользователя", selectorMarkup(format.UserLabels(users)))
}

func (h *Handler) showProfile(c tele.Context) error {
	userID := c.Sender().ID

	user, err := h.api.GetUser(context.Background(), userID, 0)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, format.User(user))
}
