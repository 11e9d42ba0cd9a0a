package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"kex/internal/modules/topics/domain"
	topicsout "kex/internal/modules/topics/port/out"
	"kex/internal/platform/id"
	"kex/internal/platform/logger"
)

// HTTPSource talks to the learning-path backend.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	retryWait  time.Duration
	ids        id.Generator
	log        *logger.Logger
}

func NewHTTPSource(baseURL string, timeout time.Duration, retries int, ids id.Generator, log *logger.Logger) *HTTPSource {
	if log == nil {
		log = logger.Nop()
	}
	if ids == nil {
		ids = id.UUID{}
	}
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retries:    retries,
		retryWait:  250 * time.Millisecond,
		ids:        ids,
		log:        log,
	}
}

var _ topicsout.RemoteSource = (*HTTPSource)(nil)

type pathResponse struct {
	Topic   string   `json:"topic"`
	Summary string   `json:"summary"`
	Links   []string `json:"links"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPSource) LearningPath(ctx context.Context, topic string, level domain.Level) (domain.LearningPath, error) {
	var body pathResponse
	if err := s.getWithRetry(ctx, "/learning-path/", topic, level, &body); err != nil {
		return domain.LearningPath{}, err
	}
	return domain.LearningPath{Topic: body.Topic, Summary: body.Summary, Links: body.Links}, nil
}

func (s *HTTPSource) Summary(ctx context.Context, topic string, level domain.Level) (string, error) {
	var body summaryResponse
	if err := s.getWithRetry(ctx, "/summary/", topic, level, &body); err != nil {
		return "", err
	}
	return body.Summary, nil
}

func (s *HTTPSource) getWithRetry(ctx context.Context, route, topic string, level domain.Level, into any) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryWait
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := s.get(ctx, route, topic, level, into)
		var te *domain.TransportError
		if err != nil && errors.As(err, &te) && !te.Retryable() {
			return struct{}{}, backoff.Permanent(err)
		}
		if err != nil {
			s.log.Warn("topic request failed", "route", route, "topic", topic, "error", err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(s.retries+1)))
	return err
}

func (s *HTTPSource) get(ctx context.Context, route, topic string, level domain.Level, into any) error {
	endpoint := s.baseURL + route + url.PathEscape(topic) + "?level=" + url.QueryEscape(string(level))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", s.ids.New())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &domain.TransportError{Message: err.Error()}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &domain.TransportError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.TransportError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, payload)}
	}
	if err := json.Unmarshal(payload, into); err != nil {
		return &domain.TransportError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

func errorMessage(status int, payload []byte) string {
	var body errorResponse
	if json.Unmarshal(payload, &body) == nil && body.Error != "" {
		return body.Error
	}
	if text := strings.TrimSpace(string(payload)); text != "" && len(text) < 300 {
		return text
	}
	return http.StatusText(status)
}
