package models

import (
	"errors"
	"strings"
)

// Depth controls how much raw material the acquisition layer gathers for a
// search. It is opaque to the extraction core.
type Depth string

const (
	DepthFast     Depth = "fast"
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// Country is the single locale this service searches. Multi-country support
// is out of scope.
const Country = "BR"

// Validation failures for SearchOptions. These surface as client errors at
// the HTTP boundary.
var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrQueryTooShort   = errors.New("query must be at least 2 characters")
	ErrUnknownDepth    = errors.New("depth must be one of fast, standard, deep")
	ErrNegativeMinimum = errors.New("min_days and min_active_ads must not be negative")
)

// SearchOptions is the immutable per-request input to a search.
type SearchOptions struct {
	Query               string `json:"query"`
	Depth               Depth  `json:"depth"`
	ExcludeMarketplaces bool   `json:"exclude_marketplaces"`
	MinDays             int    `json:"min_days"`
	MinActiveAds        int    `json:"min_active_ads"`
}

// Normalize trims the query and applies the default depth.
func (o *SearchOptions) Normalize() {
	o.Query = strings.TrimSpace(o.Query)
	if o.Depth == "" {
		o.Depth = DepthStandard
	}
}

// Validate checks the options after Normalize. The first violation found is
// returned.
func (o SearchOptions) Validate() error {
	q := strings.TrimSpace(o.Query)
	if q == "" {
		return ErrEmptyQuery
	}
	if len([]rune(q)) < 2 {
		return ErrQueryTooShort
	}
	switch o.Depth {
	case DepthFast, DepthStandard, DepthDeep:
	default:
		return ErrUnknownDepth
	}
	if o.MinDays < 0 || o.MinActiveAds < 0 {
		return ErrNegativeMinimum
	}
	return nil
}
