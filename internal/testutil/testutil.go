package testutil

import (
	"go.uber.org/zap"

	"timetracker/internal/domain"
)

// NewTestLogger creates a no-op logger for tests.
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user profile.
func NewTestUser(tgID int64, admin bool) *domain.User {
	return &domain.User{
		TgID:       tgID,
		Username:   "jdoe",
		FirstName:  "Иван",
		LastName:   "Иванов",
		MiddleName: "Иванович",
		Email:      "ivanov@example.com",
		IsAdmin:    admin,
	}
}
