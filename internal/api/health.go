package api

import (
	"net/http"
	"time"
)

// HealthHandler responds with a simple liveness check.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "health"
	const method = "GET"

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": s.Acquirer.Name(),
	})

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
