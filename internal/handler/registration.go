package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"timetracker/internal/domain"
	"timetracker/internal/format"
	"timetracker/internal/parser"
)

func (h *Handler) handleRegUsername(c tele.Context) error {
	userID := c.Sender().ID

	h.sessions.SetData(userID, dataUsername, c.Text())
	h.sessions.SetState(userID, domain.StateRegistrationFIO)
	return c.Send("Креативно! А теперь ФИО (обязательно через пробел)." +
		" Если ошибётесь, то придется просить администратора менять ФИО, а оно вам надо?)")
}

func (h *Handler) handleRegFIO(c tele.Context) error {
	userID := c.Sender().ID

	lastName, firstName, middleName, ok := parser.FIO(c.Text())
	if !ok {
		// Same state, another attempt
		return c.Send("А я предупреждал, а вы меня не послушали. Ладно, я никому не расскажу. Введите ФИО еще раз:")
	}

	h.sessions.SetData(userID, dataLastName, lastName)
	h.sessions.SetData(userID, dataFirstName, firstName)
	h.sessions.SetData(userID, dataMiddleName, middleName)
	h.sessions.SetState(userID, domain.StateRegistrationEmail)
	return c.Send("Приятно познакомиться! Осталось ввести только ваш email.")
}

// handleRegEmail validates the email and submits the accumulated draft as one
// atomic create request. No API call happens on an invalid email.
func (h *Handler) handleRegEmail(c tele.Context) error {
	userID := c.Sender().ID
	email := c.Text()

	if !parser.Email(email) {
		return c.Send("Некорректный email. Попробуйте еще раз.")
	}

	draft := domain.UserDraft{
		Email: email,
		TgID:  userID,
	}
	draft.Username, _ = h.sessions.Data(userID, dataUsername)
	draft.LastName, _ = h.sessions.Data(userID, dataLastName)
	draft.FirstName, _ = h.sessions.Data(userID, dataFirstName)
	draft.MiddleName, _ = h.sessions.Data(userID, dataMiddleName)

	user, err := h.api.CreateUser(context.Background(), draft)
	if err != nil {
		return h.fail(c, err)
	}

	h.logger.Info("user registered",
		zap.Int64("user_id", user.TgID),
		zap.String("username", user.Username),
	)
	h.sessions.SetAuthorized(user.TgID, user.IsAdmin)
	return h.toMainMenu(c,
		"Успешная регистрация. Твои данные в базе:\n"+format.User(user)+"\n\nЧем я могу помочь?")
}
