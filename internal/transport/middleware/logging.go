package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// maxLoggedBody caps how much of a request body lands in the log. Bulk
// schedule payloads can run to hundreds of rows.
const maxLoggedBody = 4096

// redactedKeys match JSON keys and header names whose values never belong in
// logs. Matching is substring on the lowercased name, so "passwordHash" and
// "Authorization" are both caught.
var redactedKeys = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"credential",
	"cookie",
}

func isRedactedKey(name string) bool {
	lower := strings.ToLower(name)
	for _, key := range redactedKeys {
		if strings.Contains(lower, key) {
			return true
		}
	}
	return false
}

// LoggingMiddleware logs one line per request and one per response, with
// credentials scrubbed out of headers and JSON bodies.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())

			var body []byte
			if r.Body != nil {
				body, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
				rest, _ := io.ReadAll(r.Body)
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), bytes.NewReader(rest)))
			}

			logger.Info("request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"headers", scrubHeaders(r.Header),
				"body", scrubBody(body),
			)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "response",
				"request_id", reqID,
				"status", rec.status,
				"bytes", rec.written,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.written += n
	return n, err
}

func scrubHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isRedactedKey(name) {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// scrubBody redacts sensitive keys from a JSON body. Non-JSON bodies are
// dropped wholesale rather than risk leaking a credential in an unknown
// format.
func scrubBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "[UNPARSED]"
	}

	scrubbed, err := json.Marshal(scrubValue(decoded))
	if err != nil {
		return "[UNPARSED]"
	}
	return string(scrubbed)
}

func scrubValue(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isRedactedKey(key) {
				out[key] = "[REDACTED]"
				continue
			}
			out[key] = scrubValue(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = scrubValue(item)
		}
		return out
	default:
		return v
	}
}
