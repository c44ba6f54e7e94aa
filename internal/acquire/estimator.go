package acquire

import (
	"context"
	"time"

	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/db"
	"github.com/adscout-br/adscout/internal/models"
	"github.com/adscout-br/adscout/internal/observability"
	"go.uber.org/zap"
)

// lookupFunc fetches the current active-ads count for an advertiser URL.
// Backends supply their own implementation (browser tab, HTTP fetch).
type lookupFunc func(ctx context.Context, advertiserURL string) (int, error)

// estimator fills Fragment.AdvertiserActiveAdsEst for a bounded prefix of
// each batch. Lookups are slow, so only the first lookupLimit fragments get
// one; results are capped and memoized in the optional Redis store.
type estimator struct {
	store       *db.RedisStore
	logger      *zap.Logger
	metrics     observability.MetricsRegistry
	lookupLimit int
	adsCap      int
	cacheTTL    time.Duration
}

func newEstimator(cfg config.Config, logger *zap.Logger, metrics observability.MetricsRegistry, store *db.RedisStore) *estimator {
	return &estimator{
		store:       store,
		logger:      logger,
		metrics:     metrics,
		lookupLimit: cfg.AdvertiserLookupLimit,
		adsCap:      cfg.AdvertiserAdsCap,
		cacheTTL:    cfg.AdvertiserCacheTTL,
	}
}

// annotate performs estimate lookups for the first lookupLimit fragments
// that carry an advertiser URL. Lookup failures leave the estimate at zero;
// they never fail the batch.
func (e *estimator) annotate(ctx context.Context, frags []models.Fragment, lookup lookupFunc) {
	looked := 0
	for i := range frags {
		if looked >= e.lookupLimit {
			break
		}
		if frags[i].AdvertiserURL == "" {
			continue
		}
		looked++
		frags[i].AdvertiserActiveAdsEst = e.estimate(ctx, frags[i].AdvertiserURL, lookup)
	}
}

func (e *estimator) estimate(ctx context.Context, advertiserURL string, lookup lookupFunc) int {
	if n, ok, err := e.store.GetAdvertiserActiveAds(advertiserURL); err != nil {
		e.logger.Warn("estimate cache read", zap.Error(err))
	} else if ok {
		e.metrics.IncrementEstimateCacheLookup("hit")
		return e.cap(n)
	} else if e.store != nil {
		e.metrics.IncrementEstimateCacheLookup("miss")
	}

	n, err := lookup(ctx, advertiserURL)
	if err != nil {
		e.logger.Warn("advertiser active-ads lookup failed",
			zap.String("advertiser_url", advertiserURL), zap.Error(err))
		return 0
	}
	n = e.cap(n)

	if err := e.store.SetAdvertiserActiveAds(advertiserURL, n, e.cacheTTL); err != nil {
		e.logger.Warn("estimate cache write", zap.Error(err))
	}
	return n
}

func (e *estimator) cap(n int) int {
	if n < 0 {
		return 0
	}
	if n > e.adsCap {
		return e.adsCap
	}
	return n
}
