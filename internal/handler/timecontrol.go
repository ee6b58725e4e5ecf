package handler

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"timetracker/internal/domain"
	"timetracker/internal/format"
	"timetracker/internal/parser"
)

const datePrompt = "Введите период в формате:\n" +
	"c dd/mm/yyyy\n" +
	"по dd/mm/yyyy\n" +
	"('c' и 'по' писать не нужно)"

const badDatePrompt = "Не получилось разобрать период. " + datePrompt

// handleTimeControlMenu dispatches a time-control submenu choice.
func (h *Handler) handleTimeControlMenu(c tele.Context) error {
	userID := c.Sender().ID

	switch c.Text() {
	case btnClockIn:
		return h.clockMark(c, true)

	case btnClockOut:
		return h.clockMark(c, false)

	case btnOwnReport:
		h.sessions.SetState(userID, domain.StateTimeControlDateRange)
		return c.Send(datePrompt, removeMarkup())

	case btnUserReport:
		return h.openUserSelector(c, domain.StateTimeControlSelectUser)

	default:
		return c.Send("Чет вы ошиблись. Введите корректную команду.", timeControlMarkup())
	}
}

// clockMark puts a start-of-work or end-of-work mark. The server reply (both
// confirmations and "already marked" rejections) is shown verbatim.
func (h *Handler) clockMark(c tele.Context, started bool) error {
	reply, err := h.api.TimeControl(context.Background(), c.Sender().ID, started)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, reply)
}

// handleTimeControlSelectUser remembers whose report to build and asks for
// the period.
func (h *Handler) handleTimeControlSelectUser(c tele.Context) error {
	userID := c.Sender().ID

	targetID, ok := parser.UserID(c.Text())
	if !ok {
		return c.Send(badSelectorPrompt)
	}

	h.sessions.SetData(userID, dataTargetID, strconv.FormatInt(targetID, 10))
	h.sessions.SetState(userID, domain.StateTimeControlDateRange)
	return c.Send(datePrompt, removeMarkup())
}

// handleTimeControlDateRange parses the period and renders the report for
// either the caller or the target selected one step earlier.
func (h *Handler) handleTimeControlDateRange(c tele.Context) error {
	userID := c.Sender().ID

	start, end, err := parser.DateRange(c.Text())
	if err != nil {
		return c.Send(badDatePrompt)
	}

	var targetID int64
	if raw, ok := h.sessions.Data(userID, dataTargetID); ok {
		targetID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.fail(c, err)
		}
	}

	entries, err := h.api.TimeReport(context.Background(), userID, start, end, targetID)
	if err != nil {
		return h.fail(c, err)
	}
	return h.toMainMenu(c, format.Report(entries))
}
