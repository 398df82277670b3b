package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"` // seconds since the listener started
}

// HealthHandler reports liveness. A zero started time means the server is
// not serving yet and reports zero uptime.
func HealthHandler(version string, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uptime int64
		if !started.IsZero() {
			uptime = int64(time.Since(started) / time.Second)
		}

		SendJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  uptime,
		})
	}
}
