package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestFixedWindowLimiterAllowsUpToLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test", 2, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	if !limiter.Allow("1.2.3.4") {
		t.Fatalf("first request should pass")
	}
	if !limiter.Allow("1.2.3.4") {
		t.Fatalf("second request should pass")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatalf("third request should be blocked")
	}
	// A different key has its own window.
	if !limiter.Allow("5.6.7.8") {
		t.Fatalf("distinct key should not share quota")
	}
}

func TestFixedWindowLimiterResetsAfterWindow(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test", 1, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}

	if !limiter.Allow("1.2.3.4") {
		t.Fatalf("first request should pass")
	}
	// Step past the window boundary; the slot key changes.
	redis.FastForward(100 * time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("1.2.3.4") {
		t.Fatalf("request in a fresh window should pass")
	}
}

func TestFixedWindowLimiterFailsClosedOnRedisOutage(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "test", 5, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	redis.Close()

	if limiter.Allow("1.2.3.4") {
		t.Fatalf("limiter should fail closed when redis is unreachable")
	}
}

func TestFixedWindowLimiterValidatesArguments(t *testing.T) {
	if _, err := NewRedisFixedWindowLimiter("", "", "test", 1, time.Minute); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewRedisFixedWindowLimiter("localhost:6379", "", "test", 0, time.Minute); err == nil {
		t.Fatalf("expected error for zero limit")
	}
	if _, err := NewRedisFixedWindowLimiter("localhost:6379", "", "test", 1, 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestFixedWindowLimiterNilIsDenied(t *testing.T) {
	var limiter *FixedWindowLimiter
	if limiter.Allow("1.2.3.4") {
		t.Fatalf("nil limiter must deny")
	}
}
