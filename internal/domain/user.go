package domain

// User is a profile exactly as the remote API returns it.
type User struct {
	TgID       int64  `json:"tg_id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"is_admin"`
}

// UserDraft is accumulated step by step during registration and submitted
// atomically once the email passes validation.
type UserDraft struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email"`
	TgID       int64  `json:"tg_id"`
}

// UserUpdate is a partial self-update. An empty field means "leave unchanged".
type UserUpdate struct {
	LastName   string `json:"last_name,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// AdminUserUpdate extends UserUpdate with fields only administrators may change.
// IsAdmin is a pointer so "don't touch the flag" stays distinguishable from "set false".
type AdminUserUpdate struct {
	UserUpdate
	Username string `json:"username,omitempty"`
	IsAdmin  *bool  `json:"is_admin,omitempty"`
}
