package domain

// UserState identifies the dialogue step a user is currently at.
// Exactly one state is current per session; StateIdle means no active dialogue.
type UserState string

const (
	StateIdle UserState = "idle"

	// Registration flow
	StateRegistrationUsername UserState = "registration.waiting_username"
	StateRegistrationFIO      UserState = "registration.waiting_fio"
	StateRegistrationEmail    UserState = "registration.waiting_email"

	// Main menu
	StateMainMenu UserState = "main_menu.waiting_action"

	// Profile editing
	StateUpdateSelf        UserState = "update_user.waiting_what_to_update"
	StateSelectUserInfo    UserState = "select_user.waiting_what_to_get"
	StateAdminUpdateUser   UserState = "admin_update.waiting_user"
	StateAdminUpdateFields UserState = "admin_update.waiting_what_to_update"
	StateAdminDeleteUser   UserState = "admin_delete.waiting_user"

	// Time tracking
	StateTimeControlMenu       UserState = "time_control.waiting_action"
	StateTimeControlSelectUser UserState = "time_control.waiting_select_user"
	StateTimeControlDateRange  UserState = "time_control.waiting_date_report"

	// Work objects
	StateObjectMenu      UserState = "object_report.waiting_action"
	StateObjectSelect    UserState = "object_report.waiting_object"
	StateObjectDateRange UserState = "object_report.waiting_date_report"
	StateObjectCreate    UserState = "object_report.waiting_new_object"
	StateObjectDelete    UserState = "object_report.waiting_delete_object"
)
