package handler

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"timetracker/internal/domain"
	"timetracker/internal/format"
	"timetracker/internal/parser"
)

const badObjectPrompt = "Не удалось распознать объект. Выберите объект кнопкой ниже."

const objectDraftPrompt = "Введите данные объекта через Enter:\n" +
	"Название\n" +
	"Город"

// handleObjectMenu dispatches an object submenu choice.
func (h *Handler) handleObjectMenu(c tele.Context) error {
	userID := c.Sender().ID

	switch c.Text() {
	case btnProfitReport:
		return h.openObjectSelector(c, domain.StateObjectSelect)

	case btnCreateObject:
		h.sessions.SetState(userID, domain.StateObjectCreate)
		return c.Send(objectDraftPrompt, removeMarkup())

	case btnDeleteObject:
		return h.openObjectSelector(c, domain.StateObjectDelete)

	case btnBackToMenu:
		return h.toMainMenu(c, "Чем я могу помочь?")

	default:
		return c.Send("Чет вы ошиблись. Введите корректную команду.", objectMenuMarkup())
	}
}

// openObjectSelector fetches the object list and renders it as a selector
// keyboard, moving the session into the given waiting-for-selection state.
func (h *Handler) openObjectSelector(c tele.Context, next domain.UserState) error {
	userID := c.Sender().ID

	objects, err := h.api.ListObjects(context.Background(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	h.sessions.SetState(userID, next)
	return c.Send("Выберите объект", selectorMarkup(format.ObjectLabels(objects)))
}

// handleObjectSelect remembers the report target and asks for the period.
func (h *Handler) handleObjectSelect(c tele.Context) error {
	userID := c.Sender().ID

	objectID, ok := parser.ObjectID(c.Text())
	if !ok {
		return c.Send(badObjectPrompt)
	}

	h.sessions.SetData(userID, dataObjectID, strconv.FormatInt(objectID, 10))
	h.sessions.SetState(userID, domain.StateObjectDateRange)
	return c.Send(datePrompt, removeMarkup())
}

// handleObjectDateRange parses the period and renders the profit report for
// the object selected one step earlier.
func (h *Handler) handleObjectDateRange(c tele.Context) error {
	userID := c.Sender().ID

	start, end, err := parser.DateRange(c.Text())
	if err != nil {
		return c.Send(badDatePrompt)
	}

	raw, ok := h.sessions.Data(userID, dataObjectID)
	if !ok {
		return h.fail(c, errMissingTarget)
	}
	objectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return h.fail(c, err)
	}

	report, err := h.api.ProfitReport(context.Background(), userID, objectID, start, end)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, format.Profit(report))
}

// handleObjectCreate submits a new object. Non-admins get the 403 text back.
func (h *Handler) handleObjectCreate(c tele.Context) error {
	userID := c.Sender().ID

	draft, ok := parser.ObjectDraft(c.Text())
	if !ok {
		return c.Send("Не получилось разобрать данные. " + objectDraftPrompt)
	}

	object, err := h.api.CreateObject(context.Background(), userID, draft)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, "Объект создан:\n"+format.ObjectLabel(*object))
}

// handleObjectDelete soft-deletes the object picked from the selector.
func (h *Handler) handleObjectDelete(c tele.Context) error {
	userID := c.Sender().ID

	objectID, ok := parser.ObjectID(c.Text())
	if !ok {
		return c.Send(badObjectPrompt)
	}

	reply, err := h.api.DeleteObject(context.Background(), userID, objectID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, reply+"\nЧто-то еще?")
}
