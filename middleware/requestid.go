package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Key type for context
type contextKey string

// RequestIDContextKey carries the request ID through the request context
const RequestIDContextKey = contextKey("request_id")

// RequestIDHeader is the response header carrying the per-request ID
const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a UUID, exposes it on the response
// header and logs the request once it completes. A client-supplied
// X-Request-Id is kept so IDs can be traced across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		log.Printf("%s %s %s (%s)", id, r.Method, r.URL.Path, time.Since(start))
	})
}
