// Package auth consumes the authentication boundary: it exchanges
// credentials for a principal identity plus a bearer token, and caches
// them in the OS keyring. Absence or rejection of a credential is the
// Unauthenticated mode, never a fatal error.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
)

// Credentials is the principal identity and bearer token issued by the
// provider.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
}

// Client talks to the hosted authentication endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: constants.RequestTimeout},
	}
}

// SignUp creates an account. The server auto-confirms the address, so a
// sign-in can follow immediately.
func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	body := map[string]string{"email": email, "password": password, "name": name}
	_, err := c.post(ctx, "/signup", "", body)
	return err
}

// SignIn performs the password grant and returns the issued credentials.
func (c *Client) SignIn(ctx context.Context, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := c.post(ctx, "/signin", "", body)
	if err != nil {
		return Credentials{}, err
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
		UserID      string `json:"userId"`
		Email       string `json:"email"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return Credentials{}, fmt.Errorf("%w: decode credentials: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if resp.AccessToken == "" {
		return Credentials{}, apperrors.ErrAuthenticationRequired
	}
	return Credentials{AccessToken: resp.AccessToken, UserID: resp.UserID, Email: resp.Email}, nil
}

// SignOut revokes the session token server-side. Best effort: the local
// credential is discarded regardless.
func (c *Client) SignOut(ctx context.Context, token string) error {
	_, err := c.post(ctx, "/signout", token, nil)
	return err
}

func (c *Client) post(ctx context.Context, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.ErrAuthenticationRequired
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRemoteUnavailable, errorMessage(data, resp.Status))
	}
	return data, nil
}

func errorMessage(body []byte, status string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return status
}
