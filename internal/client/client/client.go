package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

const (
	unavailableMessage = "Server is unavailable"
	loginFallback      = "Invalid credentials"
	registerFallback   = "Failed to register"
)

// HTTPClient talks to the auth server's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.post(ctx, "/auth/register", body, registerFallback)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return c.post(ctx, "/auth/login", body, loginFallback)
}

// Logout has nothing to tell the server: no session exists there.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return nil
}

// envelope covers both the success and the error shapes.
type envelope struct {
	models.AuthResponse
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) post(ctx context.Context, path string, in any, fallback string) (*models.AuthResponse, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Status: 0, Message: unavailableMessage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, invalidResponse(resp.StatusCode, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, invalidResponse(resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fallback
		}
		return nil, &ApplicationError{Status: resp.StatusCode, Message: msg}
	}

	return &env.AuthResponse, nil
}

func invalidResponse(status int, err error) *TransportError {
	return &TransportError{
		Status:  status,
		Message: fmt.Sprintf("Server returned an invalid response (status %d)", status),
		Err:     err,
	}
}
