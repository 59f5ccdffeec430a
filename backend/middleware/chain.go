// ABOUTME: Composes route middleware into a single handler
// ABOUTME: The first middleware listed runs outermost; nil entries are skipped

package middleware

import "net/http"

// Chain(h, LogRequest, CORS) returns LogRequest(CORS(h)).
func Chain(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		h = middlewares[i](h)
	}
	return h
}
