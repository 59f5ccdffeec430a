// ABOUTME: Tests for CORS modes and middleware chaining
// ABOUTME: Wildcard and whitelist headers, preflight short-circuit, chain order

package middleware

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

func corsRequest(method, origin string) *http.Request {
	r := httptest.NewRequest(method, "/api/v1/assess", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestCORS_Wildcard(t *testing.T) {
	w := httptest.NewRecorder()
	CORS(okHandler)(w, corsRequest(http.MethodGet, "https://anywhere.example"))

	want := map[string]string{
		"Access-Control-Allow-Origin":   "*",
		"Access-Control-Allow-Methods":  "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers":  "Content-Type, Authorization, X-Request-ID",
		"Access-Control-Expose-Headers": "X-Request-ID, Retry-After",
	}
	for header, value := range want {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestCORS_PreflightSkipsHandler(t *testing.T) {
	called := false
	next := func(w http.ResponseWriter, r *http.Request) { called = true }

	for name, mw := range map[string]func(http.HandlerFunc) http.HandlerFunc{
		"wildcard":  CORS,
		"whitelist": CORSWithConfig([]string{"https://example.com"}),
	} {
		w := httptest.NewRecorder()
		mw(next)(w, corsRequest(http.MethodOptions, "https://example.com"))
		if w.Code != http.StatusNoContent {
			t.Errorf("%s: expected 204, got %d", name, w.Code)
		}
	}
	if called {
		t.Error("Preflight reached the handler")
	}
}

func TestCORSWithConfig_Whitelist(t *testing.T) {
	allowed := []string{"https://prod.example.com", "http://localhost:5173"}

	tests := []struct {
		name    string
		allowed []string
		method  string
		origin  string
		echoed  bool
	}{
		{"listed origin", allowed, http.MethodGet, "https://prod.example.com", true},
		{"second listed origin", allowed, http.MethodPost, "http://localhost:5173", true},
		{"listed origin preflight", allowed, http.MethodOptions, "https://prod.example.com", true},
		{"unlisted origin", allowed, http.MethodGet, "https://evil.com", false},
		{"unlisted port", allowed, http.MethodGet, "http://localhost:3000", false},
		{"unlisted preflight", allowed, http.MethodOptions, "https://evil.com", false},
		{"same origin", allowed, http.MethodGet, "", false},
		{"empty whitelist", nil, http.MethodGet, "https://prod.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			CORSWithConfig(tt.allowed)(okHandler)(w, corsRequest(tt.method, tt.origin))

			got := w.Header().Get("Access-Control-Allow-Origin")
			if tt.echoed {
				if got != tt.origin {
					t.Errorf("Allow-Origin = %q, want %q", got, tt.origin)
				}
				if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("Expected credentials to be allowed for a listed origin")
				}
				if !slices.Contains(w.Header().Values("Vary"), "Origin") {
					t.Error("Expected Vary: Origin")
				}
				return
			}
			if got != "" {
				t.Errorf("Expected no Allow-Origin, got %q", got)
			}
			if tt.method != http.MethodOptions && w.Code != http.StatusOK {
				t.Errorf("Expected request to reach handler, got %d", w.Code)
			}
		})
	}
}

func TestCORSFor_ChoosesMode(t *testing.T) {
	r := corsRequest(http.MethodGet, "https://evil.com")

	w := httptest.NewRecorder()
	CORSFor(nil)(okHandler)(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard with no configured origins, got %q", got)
	}

	w = httptest.NewRecorder()
	CORSFor([]string{"https://example.com"})(okHandler)(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for unlisted origin, got %q", got)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+">")
				next(w, r)
				order = append(order, "<"+name)
			}
		}
	}

	h := Chain(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, tag("outer"), nil, tag("inner"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer>", "inner>", "handler", "<inner", "<outer"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	called := false
	Chain(func(w http.ResponseWriter, r *http.Request) { called = true })(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("Expected handler to run with an empty chain")
	}
}
