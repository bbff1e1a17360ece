// Package client talks to the todo server's HTTP API.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/netx"
)

// Client is the set of server calls the CLI needs. Calls that take a token
// send it in the Authorization header.
type Client interface {
	Signup(ctx context.Context, username, password, name string) (string, error)
	Signin(ctx context.Context, username, password string) (string, error)
	ListTodos(ctx context.Context, token string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, token, description string, done bool) (string, error)
	UpdateTodo(ctx context.Context, token, id string, patch models.TodoPatch) (string, error)
	Health(ctx context.Context) error
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(serverURL string, timeout time.Duration) *HTTPClient {
	base := strings.TrimRight(serverURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &HTTPClient{baseURL: base, http: &http.Client{Timeout: timeout}}
}

type messageBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (c *HTTPClient) call(ctx context.Context, method, path, token string, body any, want int, out any) error {
	var header http.Header
	if token != "" {
		header = http.Header{}
		header.Set(common.AccessTokenHeaderName, common.BearerScheme+token)
	}

	resp, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, body, header)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != want {
		return toAPIError(resp)
	}
	if out != nil {
		return resp.Decode(out)
	}
	return nil
}

func toAPIError(resp *netx.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var mb messageBody
	if err := resp.Decode(&mb); err == nil {
		apiErr.Message = mb.Message
		apiErr.Fields = mb.Errors
	}
	if apiErr.Message == "" && len(apiErr.Fields) > 0 {
		apiErr.Message = "validation failed"
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusConflict:
		apiErr.kind = ErrConflict
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		apiErr.kind = ErrUnavailable
	}
	return apiErr
}

func (c *HTTPClient) Signup(ctx context.Context, username, password, name string) (string, error) {
	req := map[string]string{"username": username, "password": password, "name": name}
	var out messageBody
	if err := c.call(ctx, http.MethodPost, "/signup", "", req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Signin(ctx context.Context, username, password string) (string, error) {
	req := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.call(ctx, http.MethodPost, "/signin", "", req, http.StatusOK, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("server returned an empty token")
	}
	return out.Token, nil
}

func (c *HTTPClient) ListTodos(ctx context.Context, token string) ([]models.Todo, error) {
	out := []models.Todo{}
	if err := c.call(ctx, http.MethodGet, "/todos", token, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo returns the id of the new todo.
func (c *HTTPClient) CreateTodo(ctx context.Context, token, description string, done bool) (string, error) {
	req := map[string]any{"description": description, "done": done}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.call(ctx, http.MethodPost, "/todo", token, req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) UpdateTodo(ctx context.Context, token, id string, patch models.TodoPatch) (string, error) {
	var out messageBody
	if err := c.call(ctx, http.MethodPut, "/todo/"+url.PathEscape(id), token, patch, http.StatusOK, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", "", nil, http.StatusOK, nil)
}
