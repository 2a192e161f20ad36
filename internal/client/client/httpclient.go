package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/common"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// HTTPClient talks to the rental backend's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	validator  *formValidator
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests, custom TLS).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.httpClient = c }
}

func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) { h.userAgent = ua }
}

// NewHTTPClient builds a client for baseURL. timeout bounds every request;
// zero means no client-side timeout beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api base url %q: missing host", baseURL)
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "househunt-cli",
		validator:  newFormValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func loginPath(role models.Role) (string, error) {
	switch role {
	case models.RoleRenter:
		return "/auth/user/login", nil
	case models.RoleAgent:
		return "/auth/agent/login", nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
}

func accountsPath(role models.Role) (string, error) {
	switch role {
	case models.RoleRenter:
		return "/users/", nil
	case models.RoleAgent:
		return "/agents/", nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
}

func mePath(role models.Role) (string, error) {
	switch role {
	case models.RoleRenter:
		return "/users/me", nil
	case models.RoleAgent:
		return "/agents/me", nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnknownRole, role)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The response carries no
// profile; callers fetch it separately with FetchProfile.
func (c *HTTPClient) Login(ctx context.Context, role models.Role, identifier string, secret []byte) (string, error) {
	path, err := loginPath(role)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	req := loginRequest{Username: identifier, Password: string(secret)}
	if err := c.do(ctx, http.MethodPost, path, "", req, &resp); err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", &APIError{Kind: ErrMalformedResponse, Detail: "missing access_token"}
	}
	if resp.TokenType != "" && !strings.EqualFold(resp.TokenType, common.BearerScheme) {
		return "", &APIError{Kind: ErrMalformedResponse, Detail: fmt.Sprintf("unsupported token type %q", resp.TokenType)}
	}
	return resp.AccessToken, nil
}

// Register validates form locally and creates the account. It never
// authenticates.
func (c *HTTPClient) Register(ctx context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error) {
	path, err := accountsPath(role)
	if err != nil {
		return nil, err
	}
	if err := c.validator.register(role, form); err != nil {
		return nil, err
	}

	var id models.Identity
	if err := c.do(ctx, http.MethodPost, path, "", form, &id); err != nil {
		return nil, err
	}
	id.Role = role
	return &id, nil
}

// FetchProfile loads the account behind token from the role's "me" endpoint.
func (c *HTTPClient) FetchProfile(ctx context.Context, role models.Role, token string) (*models.Profile, error) {
	path, err := mePath(role)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := c.do(ctx, http.MethodGet, path, token, nil, &p); err != nil {
		return nil, err
	}
	if err := checkProfile(&p); err != nil {
		return nil, err
	}
	p.Role = role
	return &p, nil
}

// UpdateProfile applies a partial edit to the account behind token and
// returns the updated record.
func (c *HTTPClient) UpdateProfile(ctx context.Context, role models.Role, token string, update models.ProfileUpdate) (*models.Profile, error) {
	path, err := mePath(role)
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := c.do(ctx, http.MethodPut, path, token, update, &p); err != nil {
		return nil, err
	}
	if err := checkProfile(&p); err != nil {
		return nil, err
	}
	p.Role = role
	return &p, nil
}

// Ping probes the backend health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func checkProfile(p *models.Profile) error {
	if p.ID == 0 && p.Email == "" && p.Username == "" {
		return &APIError{Kind: ErrMalformedResponse, Detail: "empty profile"}
	}
	return nil
}

func (c *HTTPClient) endpoint(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: ErrUnavailable, Detail: "Network error", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Kind: ErrMalformedResponse, Err: err}
	}
	return nil
}

// errorBody is the backend's error envelope. detail is either a string or a
// list of field errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Kind: kindForStatus(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}
	apiErr.Detail = parseDetail(body.Detail)
	return apiErr
}

func parseDetail(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var issues []fieldIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, is := range issues {
			if field := issueField(is.Loc); field != "" {
				msgs = append(msgs, field+": "+is.Msg)
			} else {
				msgs = append(msgs, is.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// issueField returns the last string element of a FastAPI error location,
// e.g. ["body", "email"] -> "email".
func issueField(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" {
			return s
		}
	}
	return ""
}
