package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, honouring one supplied by the
// caller. The id is stored under chi's request-id key so GetReqID works
// downstream, attached to the request logger, and echoed in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		ctx = logger.With(ctx, "request_id", id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
