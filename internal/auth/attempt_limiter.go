package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"aerosafe/internal/cache"
)

const (
	failedLoginKeyPrefix = "failed_login:"

	// FailureWindow is how long failed attempts count against an email.
	FailureWindow = 15 * time.Minute
	// MaxFailures is the number of failed logins tolerated within the window.
	MaxFailures = 10
)

// AttemptLimiterInterface defines the failed-login throttle operations.
type AttemptLimiterInterface interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AttemptLimiter tracks failed login attempts per email in Redis.
// When Redis is unavailable it disables throttling rather than logins.
type AttemptLimiter struct {
	cache *cache.Client
}

// Ensure AttemptLimiter implements AttemptLimiterInterface
var _ AttemptLimiterInterface = (*AttemptLimiter)(nil)

// NewAttemptLimiter creates a new attempt limiter.
func NewAttemptLimiter(cache *cache.Client) *AttemptLimiter {
	return &AttemptLimiter{cache: cache}
}

// TooManyFailures reports whether the email has exceeded the failure budget.
func (l *AttemptLimiter) TooManyFailures(ctx context.Context, email string) (bool, error) {
	data, err := l.cache.Get(ctx, failedLoginKey(email))
	if err != nil || data == nil {
		return false, nil
	}
	count, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false, nil
	}
	return count >= MaxFailures, nil
}

// RecordFailure counts a failed login attempt against the email.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, email string) error {
	_, err := l.cache.Incr(ctx, failedLoginKey(email), FailureWindow)
	return err
}

// Reset clears the failure counter after a successful login.
func (l *AttemptLimiter) Reset(ctx context.Context, email string) error {
	return l.cache.Delete(ctx, failedLoginKey(email))
}

func failedLoginKey(email string) string {
	return failedLoginKeyPrefix + strings.ToLower(email)
}
