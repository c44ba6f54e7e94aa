// Package pipeline applies the deterministic post-extraction stage: score
// recomputation, exclusion filtering and ranking. It is pure computation over
// already-built records; it never errors and treats empty input as a valid
// empty result.
package pipeline

import (
	"sort"

	"github.com/adscout-br/adscout/internal/extract"
	"github.com/adscout-br/adscout/internal/models"
)

// ExclusionMarketplace annotates records soft-excluded by the marketplace
// filter. Soft-excluded records stay in the output, visible to the caller.
const ExclusionMarketplace = "Marketplace"

// Pipeline ranks and filters ad records for one search request.
type Pipeline struct {
	urls *extract.URLClassifier
}

// New returns a Pipeline using the given URL classifier. Nil means the
// default pattern sets.
func New(urls *extract.URLClassifier) *Pipeline {
	if urls == nil {
		urls = extract.DefaultURLClassifier()
	}
	return &Pipeline{urls: urls}
}

// Run recomputes every record's score, re-derives the dropshipping flag where
// it is still unset, applies the exclusion and threshold filters, and sorts
// by descending score with descending days-active as tie-break. The sort is
// stable, so exact ties keep their input order. Running the output through
// again with the same options yields an identical list.
func (p *Pipeline) Run(records []models.AdRecord, opts models.SearchOptions) []models.ResultItem {
	out := make([]models.ResultItem, 0, len(records))

	for _, rec := range records {
		// Scores are never trusted from upstream.
		rec.Score = extract.ComputeScore(rec.AdvertiserActiveAdsEst, rec.DaysActive, rec.VariationsCount)

		if !rec.IsProbableDropshipping && rec.LandingURL != "" {
			rec.IsProbableDropshipping = p.urls.IsProbableDropshipping(rec.LandingURL)
		}

		if opts.ExcludeMarketplaces && rec.LandingURL != "" && p.urls.IsMarketplace(rec.LandingURL) {
			rec.ExclusionReason = ExclusionMarketplace
			out = append(out, models.ResultItem{Query: opts.Query, Country: models.Country, Ad: rec})
			continue
		}
		if rec.DaysActive < opts.MinDays {
			continue
		}
		if rec.AdvertiserActiveAdsEst < opts.MinActiveAds {
			continue
		}

		out = append(out, models.ResultItem{Query: opts.Query, Country: models.Country, Ad: rec})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ad.Score != out[j].Ad.Score {
			return out[i].Ad.Score > out[j].Ad.Score
		}
		return out[i].Ad.DaysActive > out[j].Ad.DaysActive
	})

	return out
}

// RunItems re-runs the pipeline over already-paired result items, stripping
// the pairing first. Useful when a caller holds ResultItems rather than bare
// records.
func (p *Pipeline) RunItems(items []models.ResultItem, opts models.SearchOptions) []models.ResultItem {
	records := make([]models.AdRecord, 0, len(items))
	for _, it := range items {
		records = append(records, it.Ad)
	}
	return p.Run(records, opts)
}
