// Package acquire gathers raw ad fragments from the public ad-library
// listing. Backends are interchangeable: a Playwright-driven browser, a plain
// HTTP fetch, and a demo generator all honor the same output contract. The
// extraction core downstream treats their output identically.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/db"
	"github.com/adscout-br/adscout/internal/models"
	"github.com/adscout-br/adscout/internal/observability"
	"go.uber.org/zap"
)

// ErrBlocked is returned when the listing served an anti-automation
// challenge and no extraction occurred. It is a distinct outcome from an
// empty result set and from a fetch failure.
var ErrBlocked = errors.New("anti-automation challenge detected")

// Acquirer fetches raw ad fragments for a query at a given depth.
type Acquirer interface {
	// Fetch returns the fragments discovered for the query. A nil error with
	// zero fragments is a valid empty result. ErrBlocked signals a challenge
	// page; any other error is an acquisition failure.
	Fetch(ctx context.Context, query string, depth models.Depth) ([]models.Fragment, error)
	// Name identifies the backend in logs and metrics.
	Name() string
}

// scrollsByDepth maps depth to scroll rounds for the browser backend.
var scrollsByDepth = map[models.Depth]int{
	models.DepthFast:     2,
	models.DepthStandard: 5,
	models.DepthDeep:     10,
}

// demoCountByDepth maps depth to the number of generated demo fragments.
var demoCountByDepth = map[models.Depth]int{
	models.DepthFast:     3,
	models.DepthStandard: 5,
	models.DepthDeep:     8,
}

const libraryBaseURL = "https://www.facebook.com/ads/library/"

// librarySearchURL builds the listing search URL for the fixed country.
func librarySearchURL(query string) string {
	v := url.Values{}
	v.Set("active_status", "active")
	v.Set("ad_type", "all")
	v.Set("country", models.Country)
	v.Set("q", query)
	v.Set("sort_data[direction]", "desc")
	v.Set("sort_data[mode]", "relevancy_monthly_grouped")
	return libraryBaseURL + "?" + v.Encode()
}

// advertiserAdsURL builds the per-advertiser listing URL used for the
// active-ads estimate.
func advertiserAdsURL(pageID string) string {
	v := url.Values{}
	v.Set("active_status", "active")
	v.Set("ad_type", "all")
	v.Set("country", models.Country)
	v.Set("view_all_page_id", pageID)
	return libraryBaseURL + "?" + v.Encode()
}

// New builds the acquirer selected by cfg.Backend. The Redis store may be
// nil, which disables estimate caching.
func New(cfg config.Config, logger *zap.Logger, metrics observability.MetricsRegistry, store *db.RedisStore) (Acquirer, error) {
	est := newEstimator(cfg, logger, metrics, store)
	switch cfg.Backend {
	case config.BackendPlaywright:
		return NewPlaywrightAcquirer(cfg, logger, est), nil
	case config.BackendStatic:
		return NewStaticAcquirer(cfg, logger, est), nil
	case config.BackendDemo:
		return NewDemoAcquirer(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown acquirer backend %q", cfg.Backend)
	}
}
