package api

import "errors"

// Kind classifies a remote API failure.
type Kind int

const (
	// KindInternal covers transport failures and unexpected status codes.
	KindInternal Kind = iota
	// KindUnauthorized means the caller is not registered (HTTP 401).
	KindUnauthorized
	// KindForbidden means an admin-only operation was attempted (HTTP 403).
	KindForbidden
	// KindBusiness is a validation or business rejection (HTTP 400);
	// Message carries the server-provided text when the body had one.
	KindBusiness
)

// Error is a classified remote API failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindBusiness:
		return "rejected by server"
	default:
		return "remote api failure"
	}
}

// IsUnauthorized reports whether err is a 401 from the remote API.
func IsUnauthorized(err error) bool { return hasKind(err, KindUnauthorized) }

// IsForbidden reports whether err is a 403 from the remote API.
func IsForbidden(err error) bool { return hasKind(err, KindForbidden) }

// IsBusiness reports whether err is a 400 business rejection.
func IsBusiness(err error) bool { return hasKind(err, KindBusiness) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
