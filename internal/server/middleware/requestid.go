package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// maxRequestIDLen caps client-supplied correlation IDs so a hostile header
// cannot bloat every log line for the request.
const maxRequestIDLen = 64

// RequestID tags every request with a correlation ID, echoed back in the
// X-Request-ID response header and carried in the context for the request
// logger. A caller-supplied X-Request-ID is honored when it is reasonably
// sized; otherwise a fresh UUIDv7 is minted, which keeps IDs sortable by
// arrival time in aggregated logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.Must(uuid.NewV7()).String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// GetRequestID returns the correlation ID for the request, or "" when the
// RequestID middleware did not run.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
