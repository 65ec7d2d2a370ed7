package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"homepage/internal/config"
)

var (
	// ErrBackend matches every failure returned by Client.GetRoot.
	ErrBackend = errors.New("backend call failed")
	// ErrTransport marks network-level failures.
	ErrTransport = fmt.Errorf("%w: transport", ErrBackend)
	// ErrInvalidPayload marks response bodies that are not valid JSON.
	ErrInvalidPayload = fmt.Errorf("%w: invalid json", ErrBackend)
)

// RequestError is returned when the backend answers with a non-2xx status.
type RequestError struct {
	StatusCode int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %d", e.StatusCode)
}

// Is reports RequestError as a backend failure.
func (e *RequestError) Is(target error) bool {
	return target == ErrBackend
}

// Client calls the backend root endpoint.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	http     *http.Client
	target   string
	log      *slog.Logger
	outcomes *prometheus.CounterVec
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRegisterer counts calls in backend_requests_total{outcome}.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg == nil {
			return
		}
		outcomes := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_requests_total",
				Help: "Total number of calls to the backend root endpoint.",
			},
			[]string{"outcome"},
		)
		if err := reg.Register(outcomes); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				c.log.Warn("backend metrics disabled", "error", err)
				return
			}
			outcomes = are.ExistingCollector.(*prometheus.CounterVec)
		}
		c.outcomes = outcomes
	}
}

// New creates a Client targeting {cfg.BaseURL}/.
func New(cfg config.BackendConfig, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = config.DefaultBackendURL
	}

	c := &Client{
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		target: strings.TrimRight(base, "/") + "/",
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint GetRoot requests.
func (c *Client) URL() string {
	return c.target
}

// GetRoot fetches the backend root endpoint and returns its JSON body.
// Failures are logged and returned; there is no retry.
func (c *Client) GetRoot(ctx context.Context) (Payload, error) {
	p, err := c.getRoot(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "backend call error", "url", c.target, "error", err)
		c.count(outcome(err))
		return nil, err
	}
	c.log.InfoContext(ctx, "backend response", "url", c.target, "payload", json.RawMessage(p))
	c.count("ok")
	return p, nil
}

func (c *Client) getRoot(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &RequestError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	return Parse(body)
}

func (c *Client) count(o string) {
	if c.outcomes != nil {
		c.outcomes.WithLabelValues(o).Inc()
	}
}

func outcome(err error) string {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return "status"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "transport"
	}
}
