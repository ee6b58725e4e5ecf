// Package format renders API payloads into the text blocks shown to users.
package format

import (
	"fmt"
	"strings"

	"timetracker/internal/domain"
)

// NoReports is shown when the requested period has no tracked intervals.
const NoReports = "Нет отчетов за данный период"

const reportTimeLayout = "02.01.2006 15:04"

// User renders a profile into the standard label:value block.
func User(u *domain.User) string {
	return fmt.Sprintf(
		"Логин: %s\n"+
			"Фамилия: %s\n"+
			"Имя: %s\n"+
			"Отчество: %s\n"+
			"Твой ID в телеграм: %d\n"+
			"Email: %s\n"+
			"Являешься ли ты админом: %s",
		u.Username, u.LastName, u.FirstName, u.MiddleName, u.TgID, u.Email, yesNo(u.IsAdmin),
	)
}

// UserLabel builds the selector button label for one user. Users without a
// middle name get a short label with no id suffix.
func UserLabel(u domain.User) string {
	if u.MiddleName == "" {
		return fmt.Sprintf("%s %s", u.LastName, u.FirstName)
	}
	return fmt.Sprintf("%s %s %s (tg_id: %d)", u.LastName, u.FirstName, u.MiddleName, u.TgID)
}

// UserLabels builds selector labels for a user list, preserving order.
func UserLabels(users []domain.User) []string {
	labels := make([]string, 0, len(users))
	for _, u := range users {
		labels = append(labels, UserLabel(u))
	}
	return labels
}

// Report renders tracked intervals one per line, preserving input order.
func Report(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return NoReports
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "С %s по %s",
			e.WorkStart.Format(reportTimeLayout), e.WorkEnd.Format(reportTimeLayout))
	}
	return b.String()
}

// ObjectLabel builds the selector button label for one work object.
func ObjectLabel(o domain.Object) string {
	return fmt.Sprintf("%s (%s) - ID: %d; Кол-во отчетов: %d", o.Name, o.City, o.ID, o.CountReport)
}

// ObjectLabels builds selector labels for an object list, preserving order.
func ObjectLabels(objects []domain.Object) []string {
	labels := make([]string, 0, len(objects))
	for _, o := range objects {
		labels = append(labels, ObjectLabel(o))
	}
	return labels
}

// Profit renders an object profit report.
func Profit(r *domain.ProfitReport) string {
	return fmt.Sprintf("Доходы: %.2f\nРасходы: %.2f\nПрибыль: %.2f", r.Income, r.Expenses, r.Profit)
}

func yesNo(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}
