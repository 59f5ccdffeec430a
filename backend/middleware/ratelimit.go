// ABOUTME: Per-client request budgets counted in fixed one-minute windows
// ABOUTME: Assessments and designs (POST) draw from a smaller budget than lookups

package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

// sweepEvery is how many new windows are opened between sweeps of stale ones.
const sweepEvery = 100

type window struct {
	hits    int
	resetAt time.Time
}

// RateLimiter admits at most limit requests per key in each period.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	opened  int
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
}

// Allow records a request for key. A rejected request also gets the time
// left until key's window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.windows[key]
	if ok && now.Before(win.resetAt) {
		if win.hits >= rl.limit {
			return false, win.resetAt.Sub(now)
		}
		win.hits++
		return true, 0
	}

	// Reaching resetAt exactly opens a fresh window, so a denial never
	// reports a zero wait.
	rl.windows[key] = &window{hits: 1, resetAt: now.Add(rl.period)}
	rl.opened++
	if rl.opened >= sweepEvery {
		rl.sweep(now)
		rl.opened = 0
	}
	return true, 0
}

// sweep drops windows that have reset. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, win := range rl.windows {
		if !now.Before(win.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// ClientIP keys requests by the first X-Forwarded-For address, falling back
// to the connection's remote host. The header is trusted as-is, so the
// service belongs behind a proxy that overwrites it.
func ClientIP(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
		return "ip:" + ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

type rateLimitedResponse struct {
	models.ErrorResponse
	RetryAfter int `json:"retry_after"`
}

// RateLimit answers 429 once keyFunc's client has spent its budget. A nil
// limiter disables it, and requests that keyFunc cannot key pass through.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil || keyFunc == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}
			ok, wait := limiter.Allow(key)
			if ok {
				next(w, r)
				return
			}

			seconds := int(math.Ceil(wait.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", sanitizePath(r.URL.Path), "retry_after", seconds)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(rateLimitedResponse{
				ErrorResponse: models.ErrorResponse{Error: "Rate limit exceeded", Code: http.StatusTooManyRequests},
				RetryAfter:    seconds,
			})
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// ByMethod charges writes to write and everything else to read. A nil
// limiter leaves its class unlimited.
func ByMethod(read, write *RateLimiter, keyFunc func(*http.Request) string) func(http.HandlerFunc) http.HandlerFunc {
	limitRead, limitWrite := RateLimit(read, keyFunc), RateLimit(write, keyFunc)
	return func(next http.HandlerFunc) http.HandlerFunc {
		reads, writes := limitRead(next), limitWrite(next)
		return func(w http.ResponseWriter, r *http.Request) {
			if isWrite(r.Method) {
				writes(w, r)
				return
			}
			reads(w, r)
		}
	}
}
