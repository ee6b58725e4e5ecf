package handler

import tele "gopkg.in/telebot.v3"

// Main menu button labels. The FSM matches on the exact text, so these are
// also the only inputs the menu states accept.
const (
	btnTimeControl   = "TimeControl"
	btnObjectReports = "Отчеты объектов"
	btnUserInfo      = "Информация о пользователях"
	btnUpdateSelf    = "Редактировать свои данные"
	btnUpdateUser    = "Редактировать пользователя"
	btnDeleteUser    = "Удалить пользователя"
	btnMyProfile     = "Посмотреть свои данные"
)

// Time control submenu labels.
const (
	btnClockIn    = "Поставить отметку о начале работы"
	btnClockOut   = "Поставить отметку о конце работы"
	btnOwnReport  = "Посмотреть свои отчеты за период"
	btnUserReport = "Посмотреть отчеты выбранного пользователя"
)

// Object submenu labels.
const (
	btnProfitReport = "Посмотреть отчет по прибыли"
	btnCreateObject = "Создать объект"
	btnDeleteObject = "Удалить объект"
	btnBackToMenu   = "Назад в меню"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnTimeControl), menu.Text(btnObjectReports)),
		menu.Row(menu.Text(btnUserInfo), menu.Text(btnMyProfile)),
		menu.Row(menu.Text(btnUpdateSelf), menu.Text(btnUpdateUser)),
		menu.Row(menu.Text(btnDeleteUser)),
	)
	return menu
}

func timeControlMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnClockIn)),
		menu.Row(menu.Text(btnClockOut)),
		menu.Row(menu.Text(btnOwnReport)),
		menu.Row(menu.Text(btnUserReport)),
	)
	return menu
}

func objectMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnProfitReport)),
		menu.Row(menu.Text(btnCreateObject), menu.Text(btnDeleteObject)),
		menu.Row(menu.Text(btnBackToMenu)),
	)
	return menu
}

// selectorMarkup renders a dynamic one-button-per-row keyboard from labels.
func selectorMarkup(labels []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	rows := make([]tele.Row, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, menu.Row(menu.Text(label)))
	}
	menu.Reply(rows...)
	return menu
}

// removeMarkup hides the reply keyboard for free-text prompts.
func removeMarkup() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
