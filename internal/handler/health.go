package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/auction-house/internal/domain"
)

// HandleHealthz pings the database and reports {"status":"ok"}, or 503 with
// the status "unavailable" when the ping fails.
func HandleHealthz(db domain.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Error("health check", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
