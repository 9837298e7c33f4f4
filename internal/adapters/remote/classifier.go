// Package remote classifies scaled feature vectors through an HTTP inference
// service guarded by a circuit breaker.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/okian/diarisk/internal/domain/features"
	"github.com/okian/diarisk/internal/domain/predict"
	"github.com/okian/diarisk/pkg/logger"
	"github.com/okian/diarisk/pkg/metrics"
)

const (
	inferPath        = "/infer"
	maxResponseBytes = 1 << 16
)

type inferRequest struct {
	Names    []string  `json:"names"`
	Features []float64 `json:"features"`
}

// Classifier implements predict.Classifier against POST <base>/infer.
type Classifier struct {
	endpoint    string
	name        string
	timeout     time.Duration
	tripAfter   uint32
	openTimeout time.Duration

	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     logger.Logger
}

// New constructs a Classifier for the service at baseURL.
func New(baseURL string, opts ...Option) (*Classifier, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid remote url %q", baseURL)
	}

	c := &Classifier{
		endpoint:    u.String() + inferPath,
		name:        "predictor",
		timeout:     2 * time.Second,
		tripAfter:   5,
		openTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = logger.Named("remote")
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        c.name,
		MaxRequests: 1,
		Timeout:     c.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.tripAfter
		},
		// The caller giving up is not a fault of the service.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(name, int(to))
			c.logger.Warn(context.Background(), "circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
	metrics.UpdateBreakerState(c.name, int(gobreaker.StateClosed))
	return c, nil
}

// Classify implements predict.Classifier.
func (c *Classifier) Classify(ctx context.Context, scaled features.Vector) (predict.Result, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.infer(ctx, scaled)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return predict.Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return predict.Result{}, err
	}
	return out.(predict.Result), nil
}

// State reports the breaker state.
func (c *Classifier) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Classifier) infer(ctx context.Context, scaled features.Vector) (predict.Result, error) {
	body, err := json.Marshal(inferRequest{Names: features.Names(), Features: scaled.Slice()})
	if err != nil {
		return predict.Result{}, fmt.Errorf("%w: encode request: %w", ErrRemote, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return predict.Result{}, fmt.Errorf("%w: build request: %w", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return predict.Result{}, ctxErr
		}
		return predict.Result{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return predict.Result{}, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var res predict.Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&res); err != nil {
		return predict.Result{}, fmt.Errorf("%w: decode response: %w", ErrRemote, err)
	}
	if err := res.Validate(); err != nil {
		return predict.Result{}, fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return res, nil
}
