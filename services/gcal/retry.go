package gcal

import (
	"errors"
	"time"
)

// ErrCredentialRevoked signals that the salon's refresh token was revoked or
// expired. Callers surface it distinctly so sync can be disabled for that
// salon; it is never worth retrying.
var ErrCredentialRevoked = errors.New("google calendar credential revoked or expired")

// IsCredentialRevoked reports whether err stems from a dead refresh token.
func IsCredentialRevoked(err error) bool {
	return errors.Is(err, ErrCredentialRevoked)
}

// RetryPolicy is an explicit retry configuration for calendar calls. The
// enumeration path and the availability-check path configure their own
// instances independently.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do runs op up to MaxAttempts times, sleeping Backoff between attempts.
// A revoked credential aborts immediately.
func (p RetryPolicy) Do(op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 && p.Backoff > 0 {
			time.Sleep(p.Backoff)
		}
		err = op()
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrCredentialRevoked) {
			return err
		}
	}
	return err
}
