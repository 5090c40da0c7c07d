package utils

import (
	"testing"
	"time"
)

func TestStartHealthLoopChecksImmediately(t *testing.T) {
	calls := 0
	check := func() HealthStatus {
		calls++
		return HealthStatus{Mongo: true, Redis: true, CheckedAt: time.Now()}
	}

	// A long interval guarantees the ticker cannot have fired yet, so any
	// recorded snapshot came from the synchronous startup check.
	startHealthLoop(check, time.Hour)

	if calls == 0 {
		t.Fatal("expected a health check before the first tick")
	}
	status := GetHealthStatus()
	if !status.Mongo || !status.Redis {
		t.Fatalf("expected healthy snapshot, got %+v", status)
	}
	if status.CheckedAt.IsZero() {
		t.Fatal("expected CheckedAt to be set at startup")
	}
}
