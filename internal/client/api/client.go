// Package api is a typed HTTP client for the taskboard REST API.
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
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrUnavailable means the server could not be reached. Requests are not retried.
var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Kind    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// inflight collapses identical concurrent mutations into one request.
	inflight singleflight.Group
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type response struct {
	status int
	body   []byte
}

// do sends one request. token overrides the TokenSource when non-empty.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}

	var (
		resp *response
		err  error
	)
	if method == http.MethodGet {
		resp, err = c.send(ctx, method, path, token, payload)
	} else {
		resp, err = c.shared(ctx, method, path, token, payload)
	}
	if err != nil {
		return err
	}

	if resp.status >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// shared joins or starts the single in-flight request for an identical
// mutation. The request itself runs detached from any one caller's context,
// bounded by the client timeout; each caller stops waiting when its own ctx
// is done.
func (c *Client) shared(ctx context.Context, method, path, token string, payload []byte) (*response, error) {
	key := method + " " + path + " " + token + " " + string(payload)
	detached := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (any, error) {
		return c.send(detached, method, path, token, payload)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*response), nil
	}
}

func (c *Client) send(ctx context.Context, method, path, token string, payload []byte) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	return &response{status: resp.StatusCode, body: raw}, nil
}

func decodeError(resp *response) error {
	var body struct {
		Error   string `json:"error"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.body, &body)

	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.status)
	}
	return &Error{Status: resp.status, Kind: body.Kind, Message: msg}
}

// Ping checks that the API answers on its root route.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", "", nil, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify checks token against the server and returns the user it belongs to.
func (c *Client) Verify(ctx context.Context, token string) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListTasks returns the caller's tasks, newest first. An empty status lists all.
func (c *Client) ListTasks(ctx context.Context, status string) ([]Task, error) {
	path := "/api/tasks"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/tasks", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	var resp taskEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), "", nil, nil)
}
