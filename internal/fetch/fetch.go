package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrNoHTTPClient     = errors.New("http client not configured")
)

// BreakerConfig controls when a resource's circuit opens.
type BreakerConfig struct {
	MaxFailures uint32
	Interval    time.Duration
	Timeout     time.Duration
}

// DefaultBreakerConfig trips after five consecutive failures and probes again after two minutes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	}
}

// NewBreaker builds a circuit breaker for a single remote resource.
// State changes are logged at DEBUG; the failed fetch itself is reported by the caller.
func NewBreaker(name string, cfg BreakerConfig, logger *log.Logger) *gobreaker.CircuitBreaker {
	if logger == nil {
		logger = log.Default()
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Printf("DEBUG: circuit %s changed from %s to %s", name, from, to)
		},
	})
}

// GetJSON issues a single GET to rawURL and decodes the JSON body into out.
// There are no retries; a nil breaker disables circuit breaking.
func GetJSON(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	rawURL string,
	out any,
) error {
	if client == nil {
		return ErrNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	do := func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, stripURL(err)
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return nil, err
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	}

	if cb == nil {
		_, err = do()
		return err
	}

	_, err = cb.Execute(do)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return err
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= 500:
		return fmt.Errorf("%w: %d", ErrServerError, code)
	case code < 200 || code >= 300:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}
	return nil
}

// stripURL drops the request URL from transport errors; weather URLs carry API keys.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
