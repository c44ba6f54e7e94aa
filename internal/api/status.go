package api

import (
	"net/http"
	"time"
)

// statusResponse summarizes the running configuration. Pattern lists and
// secrets are deliberately not echoed.
type statusResponse struct {
	Status                string   `json:"status"`
	Timestamp             string   `json:"timestamp"`
	Backend               string   `json:"backend"`
	Headless              bool     `json:"headless"`
	MaxAdsPerSearch       int      `json:"max_ads_per_search"`
	AdvertiserLookupLimit int      `json:"advertiser_lookup_limit"`
	RetryLimit            int      `json:"retry_limit"`
	CacheEnabled          bool     `json:"cache_enabled"`
	CORSOrigins           []string `json:"cors_origins"`
}

// StatusHandler reports the service's effective configuration.
func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "status"
	const method = "GET"

	writeJSON(w, http.StatusOK, statusResponse{
		Status:                "running",
		Timestamp:             time.Now().UTC().Format(time.RFC3339),
		Backend:               s.Acquirer.Name(),
		Headless:              s.Config.Headless,
		MaxAdsPerSearch:       s.Config.MaxAds,
		AdvertiserLookupLimit: s.Config.AdvertiserLookupLimit,
		RetryLimit:            s.Config.RetryLimit,
		CacheEnabled:          s.Store != nil,
		CORSOrigins:           s.Config.CORSOrigins,
	})

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
