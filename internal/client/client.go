package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNetwork is returned when the request never reached the server.
	ErrNetwork = errors.New("network error")
	// ErrUnauthenticated is returned when the server rejects the session token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// APIError is a structured failure returned by the auth service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Claim is a single token claim as echoed by the verify endpoint.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// VerifyResult is the identity the server reconstructed from the token.
type VerifyResult struct {
	User   User    `json:"user"`
	Claims []Claim `json:"claims"`
}

type apiResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    *User   `json:"user"`
	Claims  []Claim `json:"claims"`
}

// Client talks to the auth service and manages the local session. The durable
// store survives restarts ("remember me"); the scoped store lives only as long
// as the process.
type Client struct {
	baseURL string
	http    *http.Client
	durable Store
	scoped  Store
}

// New creates a client against the given base URL (e.g. "http://localhost:5121").
func New(baseURL string, durable, scoped Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		durable: durable,
		scoped:  scoped,
	}
}

// AdminSignup registers a new admin account. The issued token is returned but
// not committed to the session; login decides that.
func (c *Client) AdminSignup(ctx context.Context, name, email, adminID, password, confirmPassword string) (*Session, error) {
	body := map[string]string{
		"Name":            name,
		"Email":           email,
		"AdminId":         adminID,
		"Password":        password,
		"ConfirmPassword": confirmPassword,
	}
	resp, err := c.post(ctx, "/api/auth/admin/signup", body)
	if err != nil {
		return nil, err
	}
	return sessionFrom(resp), nil
}

// PilotSignup registers a new pilot account.
func (c *Client) PilotSignup(ctx context.Context, name, email, pilotID, password, confirmPassword string) (*Session, error) {
	body := map[string]string{
		"Name":            name,
		"Email":           email,
		"PilotId":         pilotID,
		"Password":        password,
		"ConfirmPassword": confirmPassword,
	}
	resp, err := c.post(ctx, "/api/auth/pilot/signup", body)
	if err != nil {
		return nil, err
	}
	return sessionFrom(resp), nil
}

// Login authenticates and saves the session. With remember set the session
// goes to the durable store and survives restarts; otherwise it stays in the
// process-scoped store.
func (c *Client) Login(ctx context.Context, email, password, role string, remember bool) (*Session, error) {
	body := map[string]string{
		"Email":    email,
		"Password": password,
		"Role":     role,
	}
	resp, err := c.post(ctx, "/api/auth/login", body)
	if err != nil {
		return nil, err
	}

	// A fresh login supersedes whatever either store still holds, so a
	// leftover session can never shadow the new one.
	if err := c.Logout(); err != nil {
		return nil, fmt.Errorf("clear previous session: %w", err)
	}

	session := sessionFrom(resp)
	store := c.scoped
	if remember {
		store = c.durable
	}
	if err := store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Verify asks the server to validate the current token and returns the
// identity it reconstructed. A rejected token clears the local session.
func (c *Client) Verify(ctx context.Context) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return nil, err
	}
	if session, _ := c.Session(); session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer httpResp.Body.Close()

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if httpResp.StatusCode == http.StatusUnauthorized {
		_ = c.Logout()
		return nil, ErrUnauthenticated
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: httpResp.StatusCode, Message: resp.Message}
	}

	result := &VerifyResult{Claims: resp.Claims}
	if resp.User != nil {
		result.User = *resp.User
	}
	return result, nil
}

// Session returns the current session, preferring the process-scoped store.
// Returns nil when no session is stored.
func (c *Client) Session() (*Session, error) {
	if session, err := c.scoped.Load(); err == nil && session != nil {
		return session, nil
	}
	return c.durable.Load()
}

// IsAuthenticated reports whether a token is present locally. Expiry is not
// checked here; the server's verification is authoritative.
func (c *Client) IsAuthenticated() bool {
	session, err := c.Session()
	return err == nil && session != nil && session.Token != ""
}

// Logout clears the session from both stores.
func (c *Client) Logout() error {
	scopedErr := c.scoped.Clear()
	durableErr := c.durable.Clear()
	if scopedErr != nil {
		return scopedErr
	}
	return durableErr
}

func (c *Client) post(ctx context.Context, path string, body map[string]string) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer httpResp.Body.Close()

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK || !resp.Success {
		message := resp.Message
		if message == "" {
			message = "request failed"
		}
		return nil, &APIError{StatusCode: httpResp.StatusCode, Message: message}
	}
	return &resp, nil
}

func sessionFrom(resp *apiResponse) *Session {
	session := &Session{Token: resp.Token}
	if resp.User != nil {
		session.User = *resp.User
	}
	return session
}
