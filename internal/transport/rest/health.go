package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const dbCheckTimeout = 2 * time.Second

type componentCheck struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type healthResponse struct {
	Status     string                    `json:"status"`
	CheckedAt  time.Time                 `json:"checked_at"`
	Components map[string]componentCheck `json:"components"`
}

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping is the liveness probe: the process is up and serving.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

// Health is the readiness probe: reports per-component state, currently just
// the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbCheckTimeout)
	defer cancel()

	start := time.Now()
	dbErr := h.db.PingContext(ctx)

	dbCheck := componentCheck{
		Status:     "healthy",
		DurationMs: time.Since(start).Milliseconds(),
	}
	status := http.StatusOK
	overall := "healthy"

	if dbErr != nil {
		dbCheck.Status = "unhealthy"
		dbCheck.Error = dbErr.Error()
		overall = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	resp := healthResponse{
		Status:     overall,
		CheckedAt:  time.Now(),
		Components: map[string]componentCheck{"database": dbCheck},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
