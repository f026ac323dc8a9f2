package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/sony/gobreaker"

	"github.com/pinoyinvestor/travelhunter/internal/weather"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
	Logger  *slog.Logger
}

var (
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
	errMissingAPIKey = errors.New("api key is not configured")
)

func defaultHTTPConfig(client *http.Client, logger *slog.Logger) HTTPClientConfig {
	if logger == nil {
		logger = slog.Default()
	}
	return HTTPClientConfig{
		Client: client,
		Backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		Logger: logger,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// Being told to slow down says nothing about the provider's health.
			return err == nil || errors.Is(err, weather.ErrRateLimited)
		},
	})
}

// doRequestWithResilience executes the HTTP request with retries, exponential backoff,
// and a circuit breaker. A 429 is returned at once as weather.ErrRateLimited.
func doRequestWithResilience(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var resp *http.Response
	err := retry.Do(
		func() error {
			req, err := buildRequest(ctx)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			result, err := cb.Execute(func() (interface{}, error) {
				r, execErr := cfg.Client.Do(req)
				if execErr != nil {
					return nil, execErr
				}

				switch {
				case r.StatusCode == http.StatusTooManyRequests:
					drain(r)
					return nil, weather.ErrRateLimited
				case r.StatusCode >= 500:
					drain(r)
					return nil, fmt.Errorf("%w: %d", errServerError, r.StatusCode)
				case r.StatusCode < 200 || r.StatusCode >= 300:
					drain(r)
					return nil, fmt.Errorf("%w: %d", errUnexpected, r.StatusCode)
				}
				return r, nil
			})
			if err != nil {
				if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
					return retry.Unrecoverable(fmt.Errorf("%w: %v", errCircuitOpen, err))
				}
				if errors.Is(err, weather.ErrRateLimited) || errors.Is(err, errUnexpected) {
					return retry.Unrecoverable(err)
				}
				return err
			}

			r, ok := result.(*http.Response)
			if !ok {
				return retry.Unrecoverable(fmt.Errorf("unexpected result type from circuit breaker"))
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(cfg.Backoff.MaxRetries)+1),
		retry.Delay(cfg.Backoff.InitialInterval),
		retry.MaxDelay(cfg.Backoff.MaxInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying forecast request", "breaker", cb.Name(), "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func drain(r *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, 4096))
	_ = r.Body.Close()
}

func floatPtr(v float64) *float64 {
	return &v
}

// requiredPrefix converts a nullable series into a dense one, stopping at the
// first missing entry so positions stay aligned with the date axis.
func requiredPrefix(vals []*float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			break
		}
		out = append(out, *v)
	}
	return out
}
