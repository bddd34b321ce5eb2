package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ScottHCollier/inntrac-app/internal/schedule"
)

// ErrorKind is the closed set of failure categories surfaced by the client.
// Callers switch on the kind; the message is for display only.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server"
)

// FieldError attaches a server-side validation message to the request field
// it belongs to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type APIError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FieldMessage returns the message attached to a field, if any.
func (e *APIError) FieldMessage(field string) (string, bool) {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Account is the signed-in user projection returned by the account
// endpoints.
type Account struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	FirstName      string            `json:"firstName"`
	Surname        string            `json:"surname"`
	IsAdmin        bool              `json:"isAdmin"`
	Token          string            `json:"token"`
	DefaultSiteID  string            `json:"defaultSiteId"`
	DefaultGroupID string            `json:"defaultGroupId"`
	Sites          []Site            `json:"sites"`
	Groups         []Group           `json:"groups"`
	Shifts         []json.RawMessage `json:"shifts"`
}

type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID     string `json:"id"`
	SiteID string `json:"siteId"`
	Name   string `json:"name"`
}

// Client talks to the Inntrac API. It is safe to share across goroutines if
// the token is set once up front; the session wrapper handles rotation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client authenticated with the token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPost, "/account/login", map[string]string{
		"email":    email,
		"password": password,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) Register(ctx context.Context, email, password string) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPost, "/account/register", map[string]string{
		"email":    email,
		"password": password,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) SetPassword(ctx context.Context, token, password string) (*Account, error) {
	var account Account
	err := c.do(ctx, http.MethodPost, "/account/setPassword", map[string]string{
		"token":    token,
		"password": password,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccount revalidates the current token and returns a fresh projection.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/account/", nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// WeekSchedules fetches the weekly grid rows for the window.
func (c *Client) WeekSchedules(ctx context.Context, q schedule.WeekQuery) ([]*schedule.UserRow, error) {
	params := url.Values{}
	params.Set("weekStart", q.WeekStart.Format(time.RFC3339))
	params.Set("weekEnd", q.WeekEnd.Format(time.RFC3339))
	params.Set("siteId", q.SiteID)
	if q.GroupID != "" {
		params.Set("groupId", q.GroupID)
	}
	if q.UserID != "" {
		params.Set("userId", q.UserID)
	}
	if q.SearchTerm != "" {
		params.Set("searchTerm", q.SearchTerm)
	}

	var rows []*schedule.UserRow
	if err := c.do(ctx, http.MethodGet, "/schedules/?"+params.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BulkCreateSchedules submits a batch of schedules, used by the repeat-week
// flow.
func (c *Client) BulkCreateSchedules(ctx context.Context, items []schedule.ScheduleItemDTO) ([]*schedule.Schedule, error) {
	var created []*schedule.Schedule
	if err := c.do(ctx, http.MethodPost, "/schedules/bulk", items, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// BulkUpdateSchedules submits full updates for a batch, used by accept-all.
func (c *Client) BulkUpdateSchedules(ctx context.Context, items []schedule.ScheduleItemDTO) ([]*schedule.Schedule, error) {
	var updated []*schedule.Schedule
	if err := c.do(ctx, http.MethodPut, "/schedules/bulk", items, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) RequestTimeOff(ctx context.Context, dto schedule.TimeOffDTO) ([]*schedule.Schedule, error) {
	var created []*schedule.Schedule
	if err := c.do(ctx, http.MethodPost, "/schedules/timeoff", dto, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) PendingTimeOff(ctx context.Context, siteID string) ([]*schedule.UserRow, error) {
	var rows []*schedule.UserRow
	path := "/schedules/pending?siteId=" + url.QueryEscape(siteID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindValidation, Message: err.Error()}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, reqBody)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Kind: KindServer, Message: "malformed response: " + err.Error()}
		}
		return nil
	}

	return decodeError(resp)
}

func decodeError(resp *http.Response) *APIError {
	kind := KindServer
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusNotFound:
		kind = KindNotFound
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Details struct {
				Errors []FieldError `json:"errors"`
			} `json:"details"`
		} `json:"error"`
	}

	apiErr := &APIError{Kind: kind, Message: http.StatusText(resp.StatusCode)}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
		}
		apiErr.Fields = envelope.Error.Details.Errors
	}

	return apiErr
}
