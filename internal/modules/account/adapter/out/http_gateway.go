package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kex/internal/modules/account/domain"
	accountout "kex/internal/modules/account/port/out"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/id"
	"kex/internal/platform/logger"
)

// HTTPGateway speaks the session-cookie auth API. The session survives
// between calls through the client's cookie jar.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	ids        id.Generator
	log        *logger.Logger
}

func NewHTTPGateway(baseURL string, timeout time.Duration, jar http.CookieJar, ids id.Generator, log *logger.Logger) *HTTPGateway {
	if log == nil {
		log = logger.Nop()
	}
	if ids == nil {
		ids = id.UUID{}
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		ids:        ids,
		log:        log,
	}
}

var _ accountout.Gateway = (*HTTPGateway)(nil)

type userPayload struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func (p userPayload) toDomain() domain.User {
	return domain.User{ID: p.ID, Username: p.Username, Email: p.Email, IsAdmin: p.IsAdmin}
}

func (g *HTTPGateway) Login(ctx context.Context, creds domain.Credentials) error {
	body := map[string]string{"username": creds.Username, "password": creds.Password}
	return g.do(ctx, http.MethodPost, "/login", body, nil)
}

func (g *HTTPGateway) Register(ctx context.Context, reg domain.Registration) error {
	body := map[string]string{"username": reg.Username, "email": reg.Email, "password": reg.Password}
	return g.do(ctx, http.MethodPost, "/register", body, nil)
}

func (g *HTTPGateway) Logout(ctx context.Context) error {
	return g.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (g *HTTPGateway) Me(ctx context.Context) (domain.User, error) {
	var p userPayload
	if err := g.do(ctx, http.MethodGet, "/me", nil, &p); err != nil {
		return domain.User{}, err
	}
	return p.toDomain(), nil
}

func (g *HTTPGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	var payload []userPayload
	if err := g.do(ctx, http.MethodGet, "/admin/users", nil, &payload); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(payload))
	for _, p := range payload {
		users = append(users, p.toDomain())
	}
	return users, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, route string, in, out any) error {
	var reader io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", route, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+route, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := g.ids.New()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, route, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", route, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Debug("auth request rejected", "route", route, "status", resp.StatusCode, "request_id", reqID)
		return statusError(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}
	return nil
}

func statusError(status int, payload []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(status)
	if json.Unmarshal(payload, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrInvalidInput)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrConflict)
	}
	return fmt.Errorf("auth backend: %s (status %d)", msg, status)
}
