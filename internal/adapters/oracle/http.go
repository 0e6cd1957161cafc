package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/okian/goalkeep/internal/domain/model"
	"github.com/okian/goalkeep/pkg/logger"
	"github.com/okian/goalkeep/pkg/metrics"
)

const (
	defaultTimeout         = 2 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerOpen     = 30 * time.Second
	maxErrorBody           = 512
	predictPath            = "/predict"
)

// Response is the body returned by the model server.
type Response struct {
	SaveProbability *float64 `json:"save_probability"`
}

// HTTP queries a remote model server, one POST per zone. Calls are rate
// limited and guarded by a circuit breaker.
type HTTP struct {
	baseURL         string
	client          *http.Client
	limiter         *rate.Limiter
	breaker         *gobreaker.CircuitBreaker
	breakerFailures uint32
	breakerOpen     time.Duration
	log             logger.Logger
}

// HTTPOption configures an HTTP oracle.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithRateLimit allows perSecond requests with the given burst. Zero
// disables limiting.
func WithRateLimit(perSecond float64, burst int) HTTPOption {
	return func(h *HTTP) {
		if perSecond > 0 {
			if burst < 1 {
				burst = 1
			}
			h.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithBreaker trips the breaker after failures consecutive failures and keeps
// it open for openFor.
func WithBreaker(failures uint32, openFor time.Duration) HTTPOption {
	return func(h *HTTP) {
		if failures > 0 {
			h.breakerFailures = failures
		}
		if openFor > 0 {
			h.breakerOpen = openFor
		}
	}
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l logger.Logger) HTTPOption {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHTTP creates a client for the model server at baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		baseURL:         strings.TrimRight(baseURL, "/"),
		client:          &http.Client{Timeout: defaultTimeout},
		limiter:         rate.NewLimiter(rate.Inf, 0),
		breakerFailures: defaultBreakerFailures,
		breakerOpen:     defaultBreakerOpen,
		log:             logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "save-oracle",
		MaxRequests: 1,
		Timeout:     h.breakerOpen,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= h.breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateOracleBreakerState(int(to))
			h.log.Warn(context.Background(), "oracle circuit breaker state changed",
				logger.String("circuit", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
	return h
}

// State returns the circuit breaker state.
func (h *HTTP) State() gobreaker.State { return h.breaker.State() }

// PredictSave posts the query and returns the save probability.
func (h *HTTP) PredictSave(ctx context.Context, q model.SaveQuery) (float64, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.do(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, fmt.Errorf("%w: %w", ErrBreakerOpen, err)
	}
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

func (h *HTTP) do(ctx context.Context, q model.SaveQuery) (float64, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return 0, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("oracle request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return 0, fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if r.SaveProbability == nil {
		return 0, fmt.Errorf("%w: missing save_probability", ErrMalformed)
	}
	p := *r.SaveProbability
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: probability %v out of range", ErrMalformed, p)
	}
	return p, nil
}
