package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timetracker/internal/domain"
)

func TestUser(t *testing.T) {
	u := &domain.User{
		TgID:       42,
		Username:   "jdoe",
		FirstName:  "Иван",
		LastName:   "Иванов",
		MiddleName: "Иванович",
		Email:      "ivanov@example.com",
		IsAdmin:    true,
	}

	expected := "Логин: jdoe\n" +
		"Фамилия: Иванов\n" +
		"Имя: Иван\n" +
		"Отчество: Иванович\n" +
		"Твой ID в телеграм: 42\n" +
		"Email: ivanov@example.com\n" +
		"Являешься ли ты админом: Да"

	assert.Equal(t, expected, User(u))
}

func TestUser_NotAdmin(t *testing.T) {
	u := &domain.User{TgID: 1, Username: "u"}

	assert.True(t, strings.HasSuffix(User(u), "Являешься ли ты админом: Нет"))
}

func TestUserLabel(t *testing.T) {
	tests := []struct {
		name     string
		user     domain.User
		expected string
	}{
		{
			name: "full name gets id suffix",
			user: domain.User{
				TgID: 42, FirstName: "Иван", LastName: "Иванов", MiddleName: "Иванович",
			},
			expected: "Иванов Иван Иванович (tg_id: 42)",
		},
		{
			name: "no middle name, short label",
			user: domain.User{
				TgID: 42, FirstName: "Иван", LastName: "Иванов",
			},
			expected: "Иванов Иван",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserLabel(tt.user))
		})
	}
}

func TestReport_Empty(t *testing.T) {
	assert.Equal(t, NoReports, Report(nil))
	assert.Equal(t, NoReports, Report([]domain.ReportEntry{}))
}

func TestReport_OrderPreserved(t *testing.T) {
	entries := []domain.ReportEntry{
		{
			WorkStart: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
			WorkEnd:   time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC),
		},
		{
			WorkStart: time.Date(2024, 2, 2, 10, 30, 0, 0, time.UTC),
			WorkEnd:   time.Date(2024, 2, 2, 19, 15, 0, 0, time.UTC),
		},
	}

	result := Report(entries)
	lines := strings.Split(result, "\n")

	assert.Len(t, lines, 2)
	assert.Equal(t, "С 01.02.2024 09:00 по 01.02.2024 18:00", lines[0])
	assert.Equal(t, "С 02.02.2024 10:30 по 02.02.2024 19:15", lines[1])
}

func TestObjectLabel(t *testing.T) {
	o := domain.Object{ID: 7, Name: "Склад", City: "Москва", CountReport: 3}

	assert.Equal(t, "Склад (Москва) - ID: 7; Кол-во отчетов: 3", ObjectLabel(o))
}

func TestProfit(t *testing.T) {
	r := &domain.ProfitReport{Income: 1000.5, Expenses: 400, Profit: 600.5}

	assert.Equal(t, "Доходы: 1000.50\nРасходы: 400.00\nПрибыль: 600.50", Profit(r))
}
