package api

import (
	"github.com/adscout-br/adscout/internal/acquire"
	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/db"
	"github.com/adscout-br/adscout/internal/extract"
	"github.com/adscout-br/adscout/internal/observability"
	"github.com/adscout-br/adscout/internal/pipeline"

	"go.uber.org/zap"
)

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Metrics  observability.MetricsRegistry
	Config   config.Config
	Acquirer acquire.Acquirer
	Store    *db.RedisStore

	builder  *extract.Builder
	pipeline *pipeline.Pipeline
}

// NewServer constructs a Server. The URL classifier is built from the
// config's pattern overrides so extraction and filtering share one set.
func NewServer(logger *zap.Logger, metrics observability.MetricsRegistry, cfg config.Config, acquirer acquire.Acquirer, store *db.RedisStore) *Server {
	urls := extract.NewURLClassifier(cfg.MarketplacePatterns, cfg.DropshippingPatterns)
	return &Server{
		Logger:   logger,
		Metrics:  metrics,
		Config:   cfg,
		Acquirer: acquirer,
		Store:    store,
		builder:  extract.NewBuilder(urls),
		pipeline: pipeline.New(urls),
	}
}
