// Package restclient is the typed HTTP client the site uses to talk to the
// content API. Reads are retried on transport failures, timeouts and 5xx
// responses; every error is normalized into a user-facing Spanish message.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
	DefaultBackoff = 250 * time.Millisecond

	maxResponseBytes = 4 << 20
)

// Client calls the content API rooted at baseURL.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	timeout time.Duration
	retries int
	backoff time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRetries(n int) Option {
	return func(c *Client) { c.retries = max(n, 0) }
}

// WithBackoff sets the base delay; attempt n waits n times this value.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// New returns a client for baseURL (for example "http://localhost:8080/api").
// apiKey is sent as a bearer token on mutating requests.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do runs one logical call; GETs are retried when retry is true.
func (c *Client) do(ctx context.Context, method, path string, body, out any, retry bool) (envelope, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := 1
	if retry {
		attempts += c.retries
	}

	var (
		env     envelope
		lastErr error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return envelope{}, normalizeTransport(ctx, err)
			}
		}
		env, lastErr = c.once(ctx, method, path, payload)
		if lastErr == nil || !retryable(lastErr) {
			break
		}
	}
	if lastErr != nil {
		return envelope{}, lastErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return envelope{}, &Error{Status: http.StatusOK, Message: defaultMessage, err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return env, nil
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte) (envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, &Error{Message: connectionMessage, err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, normalizeTransport(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return envelope{}, normalizeTransport(ctx, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest || decodeErr != nil || !env.Success {
		msg := strings.TrimSpace(env.Message)
		if decodeErr != nil || msg == "" {
			msg = defaultMessage
		}
		return envelope{}, &Error{Status: resp.StatusCode, Message: msg, err: decodeErr}
	}
	return env, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// normalizeTransport classifies a failure that produced no HTTP status.
// parent is the caller's context, used to tell cancellation from timeout.
func normalizeTransport(parent context.Context, err error) error {
	if errors.Is(parent.Err(), context.Canceled) {
		return &Error{Message: connectionMessage, Canceled: true, err: parent.Err()}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Message: timeoutMessage, Timeout: true, err: err}
	}
	return &Error{Message: connectionMessage, err: err}
}

func retryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Canceled {
		return false
	}
	return apiErr.Status == 0 || apiErr.Status >= http.StatusInternalServerError
}
