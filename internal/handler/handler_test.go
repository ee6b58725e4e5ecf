package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"timetracker/internal/api"
	"timetracker/internal/domain"
	"timetracker/internal/session"
	"timetracker/internal/testutil"
)

// mockContext implements the parts of tele.Context the handlers touch.
// The embedded nil interface covers the rest.
type mockContext struct {
	tele.Context
	sender *tele.User
	text   string
	sent   []sentMessage
}

type sentMessage struct {
	text   string
	markup *tele.ReplyMarkup
}

func newMockContext(userID int64, text string) *mockContext {
	return &mockContext{
		sender: &tele.User{ID: userID, FirstName: "Иван", Username: "jdoe"},
		text:   text,
	}
}

func (m *mockContext) Sender() *tele.User { return m.sender }
func (m *mockContext) Text() string       { return m.text }

func (m *mockContext) Send(what interface{}, opts ...interface{}) error {
	msg := sentMessage{}
	if s, ok := what.(string); ok {
		msg.text = s
	}
	for _, opt := range opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			msg.markup = markup
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockContext) Reply(what interface{}, opts ...interface{}) error {
	return m.Send(what, opts...)
}

func (m *mockContext) lastSent() sentMessage {
	if len(m.sent) == 0 {
		return sentMessage{}
	}
	return m.sent[len(m.sent)-1]
}

func newTestHandler(mockAPI *testutil.MockAPI) (*Handler, *session.Store) {
	sessions := session.NewStore()
	h := NewHandler(nil, mockAPI, sessions, "@admin", testutil.NewTestLogger())
	return h, sessions
}

// send drives one message through the engine the way telebot would.
func send(t *testing.T, h *Handler, userID int64, text string) *mockContext {
	t.Helper()
	c := newMockContext(userID, text)
	require.NoError(t, h.handleText(c))
	return c
}

func TestStart_CachedAuthSkipsAPI(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetAuthorized(42, false)

	c := newMockContext(42, "/start")
	require.NoError(t, h.handleStart(c))

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Вы уже авторизовались")
	mockAPI.AssertNotCalled(t, "GetUser")
}

func TestStart_UnknownAuthorizedUser(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("GetUser", int64(42), int64(0)).Return(testutil.NewTestUser(42, true), nil)
	h, sessions := newTestHandler(mockAPI)

	c := newMockContext(42, "/start")
	require.NoError(t, h.handleStart(c))

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	admin, known := sessions.Authorized(42)
	assert.True(t, known)
	assert.True(t, admin)
	mockAPI.AssertExpectations(t)
}

func TestStart_APIFailureKeepsState(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("GetUser", int64(42), int64(0)).
		Return(nil, &api.Error{Kind: api.KindInternal})
	h, sessions := newTestHandler(mockAPI)

	c := newMockContext(42, "/start")
	require.NoError(t, h.handleStart(c))

	assert.Equal(t, domain.StateIdle, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "@admin")
}

func TestRegistration_EndToEnd(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("GetUser", int64(42), int64(0)).
		Return(nil, &api.Error{Kind: api.KindUnauthorized})
	h, sessions := newTestHandler(mockAPI)

	// Fresh identity sends /start, API says unauthorized
	c := newMockContext(42, "/start")
	require.NoError(t, h.handleStart(c))
	assert.Equal(t, domain.StateRegistrationUsername, sessions.State(42))

	// Username
	send(t, h, 42, "jdoe")
	assert.Equal(t, domain.StateRegistrationFIO, sessions.State(42))

	// FIO with wrong token count keeps the state
	send(t, h, 42, "Doe John")
	assert.Equal(t, domain.StateRegistrationFIO, sessions.State(42))

	send(t, h, 42, "Doe John Middle")
	assert.Equal(t, domain.StateRegistrationEmail, sessions.State(42))

	// Invalid email: state unchanged, no API call
	send(t, h, 42, "bad-email")
	assert.Equal(t, domain.StateRegistrationEmail, sessions.State(42))
	mockAPI.AssertNotCalled(t, "CreateUser")

	// Valid email submits the exact accumulated draft
	draft := domain.UserDraft{
		Username:   "jdoe",
		FirstName:  "John",
		LastName:   "Doe",
		MiddleName: "Middle",
		Email:      "jd@example.com",
		TgID:       42,
	}
	created := &domain.User{TgID: 42, Username: "jdoe", FirstName: "John", LastName: "Doe"}
	mockAPI.On("CreateUser", draft).Return(created, nil)

	c = send(t, h, 42, "jd@example.com")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Успешная регистрация")
	_, ok := sessions.Data(42, dataUsername)
	assert.False(t, ok, "scratch data must be cleared after the flow")
	admin, known := sessions.Authorized(42)
	assert.True(t, known)
	assert.False(t, admin)
	mockAPI.AssertExpectations(t)
}

func TestMainMenu_UnmatchedText(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateMainMenu)

	c := send(t, h, 42, "что-то левое")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Чет вы ошиблись")
	assert.NotNil(t, c.lastSent().markup)
}

func TestMainMenu_ShowProfile(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("GetUser", int64(42), int64(0)).Return(testutil.NewTestUser(42, false), nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateMainMenu)

	c := send(t, h, 42, btnMyProfile)

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Логин: jdoe")
	mockAPI.AssertExpectations(t)
}

func TestSelectUserInfo_MalformedSelectorRetries(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateSelectUserInfo)

	c := send(t, h, 42, "Иванов Иван")

	assert.Equal(t, domain.StateSelectUserInfo, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Не удалось распознать")
	mockAPI.AssertNotCalled(t, "GetUser")
}

func TestAdminUpdate_Flow(t *testing.T) {
	truePtr := true
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("ListUsers", int64(42), false).
		Return([]domain.User{*testutil.NewTestUser(7, false)}, nil)
	mockAPI.On("UpdateByAdmin", int64(42), int64(7), domain.AdminUserUpdate{IsAdmin: &truePtr}).
		Return(testutil.NewTestUser(7, true), nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateMainMenu)

	send(t, h, 42, btnUpdateUser)
	assert.Equal(t, domain.StateAdminUpdateUser, sessions.State(42))

	send(t, h, 42, "Иванов Иван Иванович (tg_id: 7)")
	assert.Equal(t, domain.StateAdminUpdateFields, sessions.State(42))

	c := send(t, h, 42, "0\n0\n0\n0\n0\nДа")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Успешное редактирование")
	mockAPI.AssertExpectations(t)
}

func TestDeleteUser_BusinessErrorSurfaced(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("ListUsers", int64(42), false).
		Return([]domain.User{*testutil.NewTestUser(7, false)}, nil)
	mockAPI.On("DeleteUser", int64(42), int64(7)).
		Return("", &api.Error{Kind: api.KindBusiness, Message: "Пользователь уже удален"})
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateMainMenu)

	send(t, h, 42, btnDeleteUser)
	c := send(t, h, 42, "Иванов Иван Иванович (tg_id: 7)")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Equal(t, "Пользователь уже удален", c.lastSent().text)
}

func TestTimeControl_ClockIn(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("TimeControl", int64(42), true).Return("Отметка о начале работы поставлена", nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateTimeControlMenu)

	c := send(t, h, 42, btnClockIn)

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Equal(t, "Отметка о начале работы поставлена", c.lastSent().text)
	mockAPI.AssertExpectations(t)
}

func TestTimeControl_OtherUserReportFlow(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("ListUsers", int64(42), false).
		Return([]domain.User{*testutil.NewTestUser(7, false)}, nil)
	mockAPI.On("TimeReport", int64(42), mock.Anything, mock.Anything, int64(7)).
		Return([]domain.ReportEntry{}, nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateTimeControlMenu)

	send(t, h, 42, btnUserReport)
	assert.Equal(t, domain.StateTimeControlSelectUser, sessions.State(42))

	send(t, h, 42, "Иванов Иван Иванович (tg_id: 7)")
	assert.Equal(t, domain.StateTimeControlDateRange, sessions.State(42))

	// Reversed period is rejected in place
	c := send(t, h, 42, "29/02/2024\n01/02/2024")
	assert.Equal(t, domain.StateTimeControlDateRange, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Не получилось разобрать период")

	c = send(t, h, 42, "01/02/2024\n29/02/2024")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Equal(t, "Нет отчетов за данный период", c.lastSent().text)
	_, ok := sessions.Data(42, dataTargetID)
	assert.False(t, ok, "scratch data must be cleared after the flow")
	mockAPI.AssertExpectations(t)
}

func TestObjectFlow_ProfitReport(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("ListObjects", int64(42)).
		Return([]domain.Object{{ID: 7, Name: "Склад", City: "Москва", CountReport: 3}}, nil)
	mockAPI.On("ProfitReport", int64(42), int64(7), mock.Anything, mock.Anything).
		Return(&domain.ProfitReport{Income: 100, Expenses: 40, Profit: 60}, nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateMainMenu)

	send(t, h, 42, btnObjectReports)
	assert.Equal(t, domain.StateObjectMenu, sessions.State(42))

	send(t, h, 42, btnProfitReport)
	assert.Equal(t, domain.StateObjectSelect, sessions.State(42))

	send(t, h, 42, "Склад (Москва) - ID: 7; Кол-во отчетов: 3")
	assert.Equal(t, domain.StateObjectDateRange, sessions.State(42))

	c := send(t, h, 42, "01/02/2024\n29/02/2024")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Contains(t, c.lastSent().text, "Прибыль: 60.00")
	mockAPI.AssertExpectations(t)
}

func TestObjectCreate_ForbiddenSurfaced(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("CreateObject", int64(42), domain.ObjectDraft{Name: "Склад", City: "Москва"}).
		Return(nil, &api.Error{Kind: api.KindForbidden, Message: "Вы не являетесь админом"})
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateObjectCreate)

	c := send(t, h, 42, "Склад\nМосква")

	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	assert.Equal(t, "Вы не являетесь админом", c.lastSent().text)
}

func TestHandleText_IgnoresUnknownCommandsWhenIdle(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	h, sessions := newTestHandler(mockAPI)

	c := send(t, h, 42, "/help")

	assert.Empty(t, c.sent)
	assert.Equal(t, domain.StateIdle, sessions.State(42))
	mockAPI.AssertNotCalled(t, "GetUser")
}

func TestRegUsername_AcceptsSlashText(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetState(42, domain.StateRegistrationUsername)

	send(t, h, 42, "/whoami")

	assert.Equal(t, domain.StateRegistrationFIO, sessions.State(42))
	username, ok := sessions.Data(42, dataUsername)
	assert.True(t, ok)
	assert.Equal(t, "/whoami", username)
}

func TestStart_AbandonedFlowDropsScratchData(t *testing.T) {
	mockAPI := new(testutil.MockAPI)
	mockAPI.On("ListUsers", int64(42), false).
		Return([]domain.User{*testutil.NewTestUser(7, false)}, nil)
	// Own report after the restart: no search target may survive from the
	// abandoned other-user-report flow
	mockAPI.On("TimeReport", int64(42), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ReportEntry{}, nil)
	h, sessions := newTestHandler(mockAPI)
	sessions.SetAuthorized(42, false)
	sessions.SetState(42, domain.StateTimeControlMenu)

	// Start the other-user report flow and pick a target
	send(t, h, 42, btnUserReport)
	send(t, h, 42, "Иванов Иван Иванович (tg_id: 7)")
	_, ok := sessions.Data(42, dataTargetID)
	assert.True(t, ok)

	// Abandon it with /start
	c := newMockContext(42, "/start")
	require.NoError(t, h.handleStart(c))
	assert.Equal(t, domain.StateMainMenu, sessions.State(42))
	_, ok = sessions.Data(42, dataTargetID)
	assert.False(t, ok, "scratch data must not survive /start")

	// Run the own-report flow to completion
	send(t, h, 42, btnTimeControl)
	send(t, h, 42, btnOwnReport)
	send(t, h, 42, "01/02/2024\n29/02/2024")

	mockAPI.AssertExpectations(t)
}
