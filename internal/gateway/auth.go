package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skybook/internal/models"
)

type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewAuthClient(cfg Config) *AuthClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &AuthClient{
		baseURL: cfg.AuthServiceURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Login authenticates against the auth service and returns the session data
// to install in the session store.
func (ac *AuthClient) Login(ctx context.Context, login models.LoginRequest) (*models.Session, error) {
	jsonBody, err := json.Marshal(login)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.baseURL+"/login", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ac.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &models.Session{
		Token:    result.Token,
		Username: result.Username,
		Email:    result.Email,
		Role:     result.Role,
	}, nil
}
