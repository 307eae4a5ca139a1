package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy controls exponential backoff between attempts. MaxRetries of
// zero means a single attempt.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// BreakerSettings configures the circuit breaker guarding a provider.
type BreakerSettings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// ConsecutiveFailures trips the breaker; zero keeps gobreaker's default.
	ConsecutiveFailures uint32
}

// ErrCircuitOpen is carried by the *TransportError returned while the
// breaker rejects requests.
var ErrCircuitOpen = errors.New("circuit breaker open")

func newCircuitBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
	}
	if s.ConsecutiveFailures > 0 {
		threshold := s.ConsecutiveFailures
		settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		}
	}
	return gobreaker.NewCircuitBreaker(settings)
}

// retryableStatusError marks a response worth another attempt. The response
// is kept so the last one can be returned to the caller unchanged.
type retryableStatusError struct {
	resp *http.Response
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.resp.StatusCode)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// doWithResilience runs the request through the circuit breaker, retrying
// transport failures and 429/5xx responses with exponential backoff. When
// retries are exhausted on a bad status the last response is returned
// as-is so the caller can surface its status and body.
func doWithResilience(
	ctx context.Context,
	client HTTPClient,
	cb *gobreaker.CircuitBreaker,
	policy RetryPolicy,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	var attempt int

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := buildRequest(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		result, err := cb.Execute(func() (interface{}, error) {
			resp, doErr := client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if isRetryableStatus(resp.StatusCode) {
				return nil, &retryableStatusError{resp: resp}
			}
			return resp, nil
		})

		if err == nil {
			return result.(*http.Response), nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransportError{
				StatusCode: http.StatusServiceUnavailable,
				Body:       ErrCircuitOpen.Error(),
				Err:        ErrCircuitOpen,
			}
		}

		var statusErr *retryableStatusError
		isStatus := errors.As(err, &statusErr)

		if attempt >= policy.MaxRetries {
			if isStatus {
				return statusErr.resp, nil
			}
			return nil, fmt.Errorf("failed to do request: %w", err)
		}
		if isStatus {
			_ = statusErr.resp.Body.Close()
		}

		delay := backoffDelay(policy, attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

func backoffDelay(policy RetryPolicy, attempt int) time.Duration {
	delay := policy.InitialInterval
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	for i := 0; i < attempt; i++ {
		delay *= 2
		if policy.MaxInterval > 0 && delay >= policy.MaxInterval {
			return policy.MaxInterval
		}
	}
	return delay
}
