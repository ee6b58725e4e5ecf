// Package api implements the client for the remote time-tracking service.
//
// Every operation attaches the caller's telegram id as the tg_id header and
// maps HTTP outcomes to typed results: 200 decodes the payload, 401 becomes
// KindUnauthorized, 400 becomes KindBusiness with the server text passed
// through, 403 becomes KindForbidden, anything else KindInternal.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"timetracker/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second

	dateLayout = "2006-01-02"
)

// Service is the surface the dialogue engine depends on.
type Service interface {
	GetUser(ctx context.Context, tgID, searchID int64) (*domain.User, error)
	CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error)
	ListUsers(ctx context.Context, tgID int64, withRight bool) ([]domain.User, error)
	UpdateSelf(ctx context.Context, tgID int64, upd domain.UserUpdate) (*domain.User, error)
	UpdateByAdmin(ctx context.Context, tgID, targetID int64, upd domain.AdminUserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, tgID, targetID int64) (string, error)
	TimeControl(ctx context.Context, tgID int64, started bool) (string, error)
	TimeReport(ctx context.Context, tgID int64, start, end time.Time, searchID int64) ([]domain.ReportEntry, error)
	ListObjects(ctx context.Context, tgID int64) ([]domain.Object, error)
	ProfitReport(ctx context.Context, tgID, objectID int64, start, end time.Time) (*domain.ProfitReport, error)
	CreateObject(ctx context.Context, tgID int64, draft domain.ObjectDraft) (*domain.Object, error)
	DeleteObject(ctx context.Context, tgID, objectID int64) (string, error)
}

// Client talks to the remote service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// do performs one request and returns the raw status and body.
// tgID 0 means "no identity header" (only user creation goes unauthenticated).
func (c *Client) do(ctx context.Context, method, path string, tgID int64, query url.Values, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if tgID != 0 {
		req.Header.Set("tg_id", strconv.FormatInt(tgID, 10))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindInternal, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

// classify maps a non-200 status to a typed error.
func classify(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: strings.TrimSpace(string(body))}
	case http.StatusBadRequest:
		return &Error{Kind: KindBusiness, Message: strings.TrimSpace(string(body))}
	default:
		return &Error{Kind: KindInternal, Message: fmt.Sprintf("unexpected status %d", status)}
	}
}

// GetUser fetches a profile. searchID 0 means the caller's own profile,
// otherwise an admin lookup of another user.
func (c *Client) GetUser(ctx context.Context, tgID, searchID int64) (*domain.User, error) {
	query := url.Values{}
	if searchID != 0 {
		query.Set("tg_id_by_search", strconv.FormatInt(searchID, 10))
	}

	status, body, err := c.do(ctx, http.MethodGet, "/user/me", tgID, query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		err := classify(status, body)
		// Soft-deleted accounts come back as a bare 400.
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindBusiness && apiErr.Message == "" {
			apiErr.Message = "Ваш аккаунт удален администратором"
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}

// CreateUser registers a new user. The draft carries the telegram id in the
// body, no identity header is sent.
func (c *Client) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/user/create", 0, nil, draft)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}
	return &user, nil
}

// ListUsers fetches all registered users.
func (c *Client) ListUsers(ctx context.Context, tgID int64, withRight bool) ([]domain.User, error) {
	query := url.Values{"with_right": {strconv.FormatBool(withRight)}}

	status, body, err := c.do(ctx, http.MethodGet, "/user/get_all", tgID, query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var payload struct {
		Users []domain.User `json:"users"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return payload.Users, nil
}

// UpdateSelf applies a partial update to the caller's own profile.
func (c *Client) UpdateSelf(ctx context.Context, tgID int64, upd domain.UserUpdate) (*domain.User, error) {
	return c.update(ctx, "/user/update_me", tgID, nil, upd)
}

// UpdateByAdmin applies a partial update to another user's profile.
func (c *Client) UpdateByAdmin(ctx context.Context, tgID, targetID int64, upd domain.AdminUserUpdate) (*domain.User, error) {
	query := url.Values{"user_tg_id": {strconv.FormatInt(targetID, 10)}}
	return c.update(ctx, "/user/update_by_admin", tgID, query, upd)
}

func (c *Client) update(ctx context.Context, path string, tgID int64, query url.Values, upd interface{}) (*domain.User, error) {
	status, body, err := c.do(ctx, http.MethodPut, path, tgID, query, upd)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode updated user: %w", err)
	}
	return &user, nil
}

// DeleteUser soft-deletes a user and returns the server confirmation text.
func (c *Client) DeleteUser(ctx context.Context, tgID, targetID int64) (string, error) {
	query := url.Values{"tg_id": {strconv.FormatInt(targetID, 10)}}

	status, body, err := c.do(ctx, http.MethodDelete, "/user/soft_removal", tgID, query, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", classify(status, body)
	}
	return strings.TrimSpace(string(body)), nil
}

// TimeControl puts a clock-in (started=true) or clock-out mark. Both 200 and
// 400 carry the user-facing reply in the body: a 400 here means "already
// clocked in" style rejections that are shown verbatim.
func (c *Client) TimeControl(ctx context.Context, tgID int64, started bool) (string, error) {
	query := url.Values{"is_started": {strconv.FormatBool(started)}}

	status, body, err := c.do(ctx, http.MethodPost, "/user/start_work", tgID, query, nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusOK || status == http.StatusBadRequest {
		return strings.TrimSpace(string(body)), nil
	}
	return "", classify(status, body)
}

// TimeReport fetches tracked intervals for the period. searchID 0 means the
// caller's own report.
func (c *Client) TimeReport(ctx context.Context, tgID int64, start, end time.Time, searchID int64) ([]domain.ReportEntry, error) {
	query := url.Values{
		"date_start": {start.Format(dateLayout)},
		"date_end":   {end.Format(dateLayout)},
	}
	if searchID != 0 {
		query.Set("tg_id_by_search", strconv.FormatInt(searchID, 10))
	}

	status, body, err := c.do(ctx, http.MethodGet, "/user/get_time_control", tgID, query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var payload struct {
		Reports []domain.ReportEntry `json:"reports"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return payload.Reports, nil
}

// ListObjects fetches all work objects.
func (c *Client) ListObjects(ctx context.Context, tgID int64) ([]domain.Object, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/object/all", tgID, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var payload struct {
		Objects []domain.Object `json:"objects"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode object list: %w", err)
	}
	return payload.Objects, nil
}

// ProfitReport fetches object finances for the period.
func (c *Client) ProfitReport(ctx context.Context, tgID, objectID int64, start, end time.Time) (*domain.ProfitReport, error) {
	query := url.Values{
		"date_start": {start.Format(dateLayout)},
		"date_end":   {end.Format(dateLayout)},
	}
	path := fmt.Sprintf("/object/%d/report_profit", objectID)

	status, body, err := c.do(ctx, http.MethodGet, path, tgID, query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, classify(status, body)
	}

	var report domain.ProfitReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode profit report: %w", err)
	}
	return &report, nil
}

// CreateObject registers a new work object. Admin-only: non-admins get a 403.
func (c *Client) CreateObject(ctx context.Context, tgID int64, draft domain.ObjectDraft) (*domain.Object, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/object/create", tgID, nil, draft)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		err := classify(status, body)
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindForbidden && apiErr.Message == "" {
			apiErr.Message = "Вы не являетесь админом"
		}
		return nil, err
	}

	var object domain.Object
	if err := json.Unmarshal(body, &object); err != nil {
		return nil, fmt.Errorf("decode created object: %w", err)
	}
	return &object, nil
}

// DeleteObject soft-deletes a work object and returns the confirmation text.
func (c *Client) DeleteObject(ctx context.Context, tgID, objectID int64) (string, error) {
	query := url.Values{"object_id": {strconv.FormatInt(objectID, 10)}}

	status, body, err := c.do(ctx, http.MethodDelete, "/object/soft_removal", tgID, query, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", classify(status, body)
	}
	return strings.TrimSpace(string(body)), nil
}
