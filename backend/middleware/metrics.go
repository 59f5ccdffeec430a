// ABOUTME: Prometheus instrumentation middleware
// ABOUTME: Records request counts and latency labelled by route pattern, not raw path

package middleware

import (
	"net/http"
	"time"

	"github.com/Eswari2225/DropSaviors/backend/metrics"
)

// Instrument records each request against route, which should be the
// registered pattern so path parameters do not explode label cardinality.
func Instrument(rec *metrics.Recorder, route string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if rec == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)
			next(wrapped, r)
			rec.ObserveRequest(r.Method, route, wrapped.statusCode, time.Since(start))
		}
	}
}
