package handler

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"timetracker/internal/api"
	"timetracker/internal/domain"
	"timetracker/internal/session"
)

// errMissingTarget signals that a flow step needs a target id that was never
// stored, e.g. after a process restart mid-flow.
var errMissingTarget = errors.New("no target stored in session")

// Scratch data keys shared between flow steps.
const (
	dataUsername   = "username"
	dataLastName   = "last_name"
	dataFirstName  = "first_name"
	dataMiddleName = "middle_name"
	dataTargetID   = "target_id"
	dataObjectID   = "object_id"
)

// Handler is the dialogue engine: it resolves the user's current state,
// routes the message to the matching flow step and produces the reply.
type Handler struct {
	bot          *tele.Bot
	api          api.Service
	sessions     *session.Store
	logger       *zap.Logger
	adminContact string

	// routes is the state -> handler transition table. Every dialogue state
	// must have exactly one entry here.
	routes map[domain.UserState]tele.HandlerFunc
	// menu maps main menu button labels to their actions.
	menu map[string]tele.HandlerFunc
}

// NewHandler creates a handler instance wired to the given collaborators.
func NewHandler(
	bot *tele.Bot,
	apiClient api.Service,
	sessions *session.Store,
	adminContact string,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:          bot,
		api:          apiClient,
		sessions:     sessions,
		logger:       logger,
		adminContact: adminContact,
	}

	h.routes = map[domain.UserState]tele.HandlerFunc{
		domain.StateRegistrationUsername: h.handleRegUsername,
		domain.StateRegistrationFIO:      h.handleRegFIO,
		domain.StateRegistrationEmail:    h.handleRegEmail,

		domain.StateMainMenu: h.handleMainMenu,

		domain.StateUpdateSelf:        h.handleUpdateSelf,
		domain.StateSelectUserInfo:    h.handleSelectUserInfo,
		domain.StateAdminUpdateUser:   h.handleAdminUpdateUser,
		domain.StateAdminUpdateFields: h.handleAdminUpdateFields,
		domain.StateAdminDeleteUser:   h.handleAdminDeleteUser,

		domain.StateTimeControlMenu:       h.handleTimeControlMenu,
		domain.StateTimeControlSelectUser: h.handleTimeControlSelectUser,
		domain.StateTimeControlDateRange:  h.handleTimeControlDateRange,

		domain.StateObjectMenu:      h.handleObjectMenu,
		domain.StateObjectSelect:    h.handleObjectSelect,
		domain.StateObjectDateRange: h.handleObjectDateRange,
		domain.StateObjectCreate:    h.handleObjectCreate,
		domain.StateObjectDelete:    h.handleObjectDelete,
	}

	h.menu = map[string]tele.HandlerFunc{
		btnTimeControl:   h.openTimeControl,
		btnObjectReports: h.openObjects,
		btnUserInfo:      h.openUserInfo,
		btnUpdateSelf:    h.openUpdateSelf,
		btnUpdateUser:    h.openAdminUpdate,
		btnDeleteUser:    h.openAdminDelete,
		btnMyProfile:     h.showProfile,
	}

	return h
}

// RegisterHandlers registers all bot handlers.
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)
}

// handleText routes a free-text message to the handler of the user's
// current state. Active states receive the text as is, slash-prefixed or
// not: the username step accepts any text. Idle users are treated as if
// they sent /start, except unknown commands, which are ignored.
func (h *Handler) handleText(c tele.Context) error {
	state := h.sessions.State(c.Sender().ID)
	if fn, ok := h.routes[state]; ok {
		return fn(c)
	}

	if strings.HasPrefix(strings.TrimSpace(c.Text()), "/") {
		return nil
	}
	return h.handleStart(c)
}

// toMainMenu finishes the current flow: scratch data is dropped and the user
// lands back at the main menu.
func (h *Handler) toMainMenu(c tele.Context, text string) error {
	userID := c.Sender().ID
	h.sessions.ClearData(userID)
	h.sessions.SetState(userID, domain.StateMainMenu)
	return c.Send(text, mainMenuMarkup())
}

// fail reports an API failure and drops the user back to the main menu.
// Business and forbidden rejections are surfaced verbatim, everything else
// becomes the generic "contact the administrator" message.
func (h *Handler) fail(c tele.Context, err error) error {
	h.logger.Warn("api call failed",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("state", string(h.sessions.State(c.Sender().ID))),
		zap.Error(err),
	)
	return h.toMainMenu(c, h.errorText(err))
}

func (h *Handler) errorText(err error) string {
	if api.IsBusiness(err) || api.IsForbidden(err) {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return h.genericError()
}

func (h *Handler) genericError() string {
	return fmt.Sprintf("Произошла непредвиденная ошибка. Обратитесь к администратору (%s)", h.adminContact)
}

func senderName(c tele.Context) string {
	sender := c.Sender()
	if sender == nil {
		return ""
	}
	name := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	if name == "" {
		return sender.Username
	}
	return name
}
