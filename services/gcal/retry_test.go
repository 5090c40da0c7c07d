package gcal

import (
	"errors"
	"fmt"
	"testing"
)

func TestRetryPolicy_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	p := RetryPolicy{MaxAttempts: 3}
	err := p.Do(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryPolicy_ExhaustsAttempts(t *testing.T) {
	calls := 0
	p := RetryPolicy{MaxAttempts: 2}
	err := p.Do(func() error {
		calls++
		return errors.New("still down")
	})
	if err == nil {
		t.Fatal("expected the last error")
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetryPolicy_RevokedCredentialAbortsImmediately(t *testing.T) {
	calls := 0
	p := RetryPolicy{MaxAttempts: 5}
	err := p.Do(func() error {
		calls++
		return fmt.Errorf("listing events: %w", ErrCredentialRevoked)
	})
	if !errors.Is(err, ErrCredentialRevoked) {
		t.Fatalf("expected revoked credential error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("revoked credential must not be retried; got %d calls", calls)
	}
}

func TestRetryPolicy_ZeroAttemptsStillRunsOnce(t *testing.T) {
	calls := 0
	p := RetryPolicy{}
	_ = p.Do(func() error {
		calls++
		return nil
	})
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}
