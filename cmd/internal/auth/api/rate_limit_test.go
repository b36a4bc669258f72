package api

import (
	"testing"
	"time"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	l := newLoginLimiter(3, time.Minute)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		if blocked, _ := l.blocked("10.0.0.1", now); blocked {
			t.Fatalf("blocked after %d failures", i)
		}
		l.fail("10.0.0.1", now)
	}

	blocked, retryAfter := l.blocked("10.0.0.1", now)
	if !blocked {
		t.Fatal("must block after max failures")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Fatalf("retryAfter out of range: %v", retryAfter)
	}

	// A different IP is unaffected.
	if blocked, _ := l.blocked("10.0.0.2", now); blocked {
		t.Fatal("unrelated ip must not be blocked")
	}
}

func TestLoginLimiterWindowExpiry(t *testing.T) {
	l := newLoginLimiter(2, time.Minute)
	now := time.Now().UTC()

	l.fail("ip", now)
	l.fail("ip", now)
	if blocked, _ := l.blocked("ip", now); !blocked {
		t.Fatal("must block inside the window")
	}
	if blocked, _ := l.blocked("ip", now.Add(time.Minute)); blocked {
		t.Fatal("window expiry must unblock")
	}
}

func TestLoginLimiterSuccessResets(t *testing.T) {
	l := newLoginLimiter(2, time.Minute)
	now := time.Now().UTC()

	l.fail("ip", now)
	l.fail("ip", now)
	l.success("ip")
	if blocked, _ := l.blocked("ip", now); blocked {
		t.Fatal("success must clear the bucket")
	}
}

func TestLoginLimiterDisabled(t *testing.T) {
	l := newLoginLimiter(0, time.Minute)
	now := time.Now().UTC()
	l.fail("ip", now)
	if blocked, _ := l.blocked("ip", now); blocked {
		t.Fatal("zero max disables the limiter")
	}
}
