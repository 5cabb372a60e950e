package utils

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

type RetryConfig struct {
	MaxRetries int
	MaxJitter  time.Duration
	Delay      time.Duration

	// Longest wait the server may ask for, zero means no limit
	MaxDelay time.Duration

	// Extracts the wait the server asked for from the error
	RetryAfter func(error) (time.Duration, bool)

	// Reports whether the error is worth another attempt.
	// Every error is retried if nil.
	Retryable func(error) bool
}

// Retry a function with exponential backoff
func Retry[T any](
	ctx context.Context,
	rc *RetryConfig,
	callable func() (T, error),
) (T, error) {

	var (
		zero      T
		lastError error
	)

	// Avoid zero or negative maxRetries
	maxRetries := max(rc.MaxRetries, 1)

	for i := range maxRetries {

		data, err := callable()
		if err == nil {
			return data, nil
		}

		lastError = err
		if rc.Retryable != nil && !rc.Retryable(err) {
			return zero, err
		}

		// If this is the last iteration break the loop
		if i+1 == maxRetries {
			break
		}

		// Calculate the backoff (2^i) + jitter
		jitter := time.Duration(rand.Float64() * float64(rc.MaxJitter)) // #nosec G404
		sleepTime := rc.Delay*time.Duration(math.Pow(2, float64(i))) + jitter

		// The server knows better how long to wait
		if rc.RetryAfter != nil {
			if retryDelay, ok := rc.RetryAfter(err); ok {
				if rc.MaxDelay > 0 && retryDelay > rc.MaxDelay {
					return zero, fmt.Errorf(
						"server requested excessive wait: %v; %w",
						retryDelay, lastError,
					)
				}
				sleepTime = retryDelay
			}
		}

		// Wait for either the sleep time or context to end
		select {
		case <-ctx.Done():
			return zero, errors.Join(ctx.Err(), lastError)
		case <-time.After(sleepTime):
		}
	}

	return zero, fmt.Errorf("%d max retries error; %w", maxRetries, lastError)
}
