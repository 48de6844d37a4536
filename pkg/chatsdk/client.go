package chatsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the chat API without credentials and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with a 10s request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and returns a session for it.
func (c *SDKClient) Register(ctx context.Context, req RegistrationRequest) (*Session, error) {
	return c.authenticate(ctx, "/v1/auth/registration", req, http.StatusCreated)
}

// Login exchanges email and password for a session.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	return c.authenticate(ctx, "/v1/auth/login", req, http.StatusOK)
}

// Bootstrap creates the first superuser on an empty service.
func (c *SDKClient) Bootstrap(ctx context.Context, req BootstrapRequest) (*Session, error) {
	return c.authenticate(ctx, "/v1/bootstrap", req, http.StatusCreated)
}

func (c *SDKClient) authenticate(ctx context.Context, path string, payload any, status int) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, status); err != nil {
		return nil, err
	}
	return c.NewSession(auth.AccessToken.Token, auth.User), nil
}

// NewSession wraps an existing access token.
func (c *SDKClient) NewSession(token string, user UserResponse) *Session {
	return &Session{client: c, token: token, user: user}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service can reach its database.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var h HealthResponse
	if err := decodeJSON(resp, &h, http.StatusOK); err != nil {
		return nil, err
	}
	return &h, nil
}
