// Package parser converts raw message text into typed values.
//
// Parsers never talk to the user: they return a non-match flag or an error
// and leave the retry decision to the calling handler.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-ozzo/ozzo-validation/v4/is"

	"timetracker/internal/domain"
)

var (
	userIDPattern   = regexp.MustCompile(`\(tg_id: (\d+)\)$`)
	objectIDPattern = regexp.MustCompile(`ID: (\d+);`)
)

const dateLayout = "02/01/2006"

// UserID extracts the trailing telegram id from a selector button label like
// "Иванов Иван Иванович (tg_id: 42)". Labels without the suffix do not match.
func UserID(label string) (int64, bool) {
	m := userIDPattern.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ObjectID extracts the object id from a selector label like
// "Склад (Москва) - ID: 7; Кол-во отчетов: 3".
func ObjectID(label string) (int64, bool) {
	m := objectIDPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// FIO splits a full name into exactly three whitespace-separated parts,
// in the customary "Фамилия Имя Отчество" order.
func FIO(text string) (lastName, firstName, middleName string, ok bool) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// Email reports whether text is a syntactically valid email address.
func Email(text string) bool {
	return is.EmailFormat.Validate(strings.TrimSpace(text)) == nil
}

// field returns the i-th line with the "leave unchanged" sentinel collapsed
// to the empty string. Missing lines also mean "unchanged".
func field(lines []string, i int) string {
	if i >= len(lines) {
		return ""
	}
	v := strings.TrimSpace(lines[i])
	if v == "0" {
		return ""
	}
	return v
}

// SelfUpdate parses the fixed-order newline-delimited partial update:
// last name, first name, middle name, email. "0" or an empty line keeps
// the field as is, so the literal all-zeros input yields an empty change set.
func SelfUpdate(text string) domain.UserUpdate {
	lines := strings.Split(text, "\n")
	return domain.UserUpdate{
		LastName:   field(lines, 0),
		FirstName:  field(lines, 1),
		MiddleName: field(lines, 2),
		Email:      field(lines, 3),
	}
}

// AdminUpdate parses the admin variant: the same four fields followed by
// username and the admin flag as "Да"/"Нет" text.
func AdminUpdate(text string) domain.AdminUserUpdate {
	lines := strings.Split(text, "\n")
	upd := domain.AdminUserUpdate{
		UserUpdate: domain.UserUpdate{
			LastName:   field(lines, 0),
			FirstName:  field(lines, 1),
			MiddleName: field(lines, 2),
			Email:      field(lines, 3),
		},
		Username: field(lines, 4),
	}
	switch flag := field(lines, 5); {
	case strings.EqualFold(flag, "Да"):
		v := true
		upd.IsAdmin = &v
	case strings.EqualFold(flag, "Нет"):
		v := false
		upd.IsAdmin = &v
	}
	return upd
}

// DateRange parses a two-line dd/mm/yyyy period. A start date after the end
// date is rejected.
func DateRange(text string) (start, end time.Time, err error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("expected 2 lines, got %d", len(lines))
	}

	start, err = time.Parse(dateLayout, strings.TrimSpace(lines[0]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
	}
	end, err = time.Parse(dateLayout, strings.TrimSpace(lines[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}

// ObjectDraft parses a two-line object description: name, city.
func ObjectDraft(text string) (domain.ObjectDraft, bool) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 2 {
		return domain.ObjectDraft{}, false
	}
	draft := domain.ObjectDraft{
		Name: strings.TrimSpace(lines[0]),
		City: strings.TrimSpace(lines[1]),
	}
	if draft.Name == "" || draft.City == "" {
		return domain.ObjectDraft{}, false
	}
	return draft, true
}
