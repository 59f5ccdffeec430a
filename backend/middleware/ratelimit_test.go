// ABOUTME: Tests for per-client request budgets
// ABOUTME: Covers window accounting, client keys and the 429 response

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func okHandler(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func hit(h http.HandlerFunc, method, remoteAddr string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, "/api/v1/assess", nil)
	r.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestRateLimiter_Budget(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 1; i <= 3; i++ {
		if ok, _ := rl.Allow("ip:10.0.0.1"); !ok {
			t.Fatalf("Request %d should be admitted", i)
		}
	}

	ok, wait := rl.Allow("ip:10.0.0.1")
	if ok {
		t.Fatal("Fourth request should be rejected")
	}
	if wait <= 0 || wait > time.Minute {
		t.Errorf("Expected wait in (0, 1m], got %v", wait)
	}

	if ok, _ := rl.Allow("ip:10.0.0.2"); !ok {
		t.Error("Another client should have its own budget")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 40*time.Millisecond)
	rl.Allow("k")
	if ok, _ := rl.Allow("k"); ok {
		t.Fatal("Expected rejection inside the window")
	}

	time.Sleep(60 * time.Millisecond)
	if ok, _ := rl.Allow("k"); !ok {
		t.Error("Expected a fresh window after reset")
	}
}

func TestRateLimiter_SweepsStaleWindows(t *testing.T) {
	rl := NewRateLimiter(10, 20*time.Millisecond)
	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("stale-%d", i))
	}
	time.Sleep(40 * time.Millisecond)

	// The 100th opened window triggers a sweep of the five stale ones.
	for i := 0; i < sweepEvery-5; i++ {
		rl.Allow(fmt.Sprintf("fresh-%d", i))
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.windows) != sweepEvery-5 {
		t.Errorf("Expected %d live windows, got %d", sweepEvery-5, len(rl.windows))
	}
	if _, ok := rl.windows["stale-0"]; ok {
		t.Error("Expected stale window to be swept")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	keys := []string{"a", "b", "c"}

	var admitted [3]atomic.Int32
	var wg sync.WaitGroup
	for i, key := range keys {
		for j := 0; j < 20; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := rl.Allow(key); ok {
					admitted[i].Add(1)
				}
			}()
		}
	}
	wg.Wait()

	for i, key := range keys {
		if got := admitted[i].Load(); got != 5 {
			t.Errorf("Key %s: expected 5 admitted, got %d", key, got)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		want   string
	}{
		{"forwarded", "203.0.113.1", "10.0.0.1:1", "ip:203.0.113.1"},
		{"leftmost forwarded", " 203.0.113.1 , 198.51.100.1", "10.0.0.1:1", "ip:203.0.113.1"},
		{"garbage forwarded", "not-an-ip", "10.0.0.5:9999", "ip:10.0.0.5"},
		{"empty forwarded", "", "10.0.0.5:9999", "ip:10.0.0.5"},
		{"remote without port", "", "192.168.1.1", "ip:192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("X-Forwarded-For", tt.xff)
			r.RemoteAddr = tt.remote
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	noKey := func(*http.Request) string { return "" }
	cases := map[string]http.HandlerFunc{
		"nil limiter": RateLimit(nil, ClientIP)(okHandler),
		"empty key":   RateLimit(NewRateLimiter(1, time.Minute), noKey)(okHandler),
	}
	for name, h := range cases {
		for i := 0; i < 3; i++ {
			if w := hit(h, http.MethodGet, "10.0.0.1:1234"); w.Code != http.StatusOK {
				t.Errorf("%s: request %d got %d, want 200", name, i+1, w.Code)
			}
		}
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	h := RateLimit(NewRateLimiter(1, time.Minute), ClientIP)(okHandler)
	if w := hit(h, http.MethodGet, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("First request got %d, want 200", w.Code)
	}

	w := hit(h, http.MethodGet, "10.0.0.1:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request got %d, want 429", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	header, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || header < 1 || header > 60 {
		t.Errorf("Expected Retry-After in [1, 60], got %q", w.Header().Get("Retry-After"))
	}

	var body rateLimitedResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Error != "Rate limit exceeded" || body.Code != http.StatusTooManyRequests {
		t.Errorf("Unexpected body %+v", body)
	}
	if body.RetryAfter != header {
		t.Errorf("Expected retry_after %d to match header, got %d", header, body.RetryAfter)
	}
}

func TestByMethod_SeparateBudgets(t *testing.T) {
	h := ByMethod(NewRateLimiter(2, time.Minute), NewRateLimiter(1, time.Minute), ClientIP)(okHandler)
	const addr = "10.0.0.9:1234"

	steps := []struct {
		method string
		want   int
	}{
		{http.MethodPost, http.StatusOK},
		{http.MethodPost, http.StatusTooManyRequests},
		{http.MethodGet, http.StatusOK},
		{http.MethodGet, http.StatusOK},
		{http.MethodGet, http.StatusTooManyRequests},
	}
	for i, s := range steps {
		if w := hit(h, s.method, addr); w.Code != s.want {
			t.Fatalf("Step %d %s: got %d, want %d", i+1, s.method, w.Code, s.want)
		}
	}
}

func TestByMethod_NilWriteLimiter(t *testing.T) {
	h := ByMethod(NewRateLimiter(1, time.Minute), nil, ClientIP)(okHandler)
	for i := 0; i < 5; i++ {
		if w := hit(h, http.MethodPost, "10.0.0.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("POST %d got %d with no write limiter", i+1, w.Code)
		}
	}
}
