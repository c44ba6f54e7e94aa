package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adscout-br/adscout/internal/models"
)

func record(name string, activeAds, days, variations int, landing string) models.AdRecord {
	rec := models.NewAdRecord()
	rec.AdvertiserName = name
	rec.AdvertiserActiveAdsEst = activeAds
	rec.DaysActive = days
	rec.VariationsCount = variations
	rec.LandingURL = landing
	return rec
}

func TestRunEmptyInput(t *testing.T) {
	p := New(nil)
	out := p.Run(nil, models.SearchOptions{Query: "tenis"})
	require.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestRunRecomputesScoreAndSorts(t *testing.T) {
	p := New(nil)
	low := record("loja-a", 10, 5, 1, "https://loja-a.com.br")
	high := record("loja-b", 40, 50, 3, "https://loja-b.com.br")
	// Upstream scores are ignored.
	low.Score = 999
	high.Score = 0

	out := p.Run([]models.AdRecord{low, high}, models.SearchOptions{Query: "tenis"})
	require.Len(t, out, 2)
	assert.Equal(t, "loja-b", out[0].Ad.AdvertiserName)
	assert.Equal(t, 75.74, out[0].Ad.Score)
	assert.Equal(t, "loja-a", out[1].Ad.AdvertiserName)
	assert.Equal(t, 16.45, out[1].Ad.Score)

	// Insertion order must not matter.
	out = p.Run([]models.AdRecord{high, low}, models.SearchOptions{Query: "tenis"})
	require.Len(t, out, 2)
	assert.Equal(t, "loja-b", out[0].Ad.AdvertiserName)
}

func TestRunDaysActiveTieBreak(t *testing.T) {
	p := New(nil)
	// Both days values sit past the scoring ceiling, so the scores tie while
	// the raw days differ. The longer-running ad ranks first.
	a := record("a", 0, 70, 1, "")
	b := record("b", 0, 100, 1, "")
	out := p.Run([]models.AdRecord{a, b}, models.SearchOptions{Query: "q"})
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Ad.AdvertiserName)
	assert.Equal(t, "a", out[1].Ad.AdvertiserName)
}

func TestRunSoftExcludesMarketplaces(t *testing.T) {
	p := New(nil)
	mp := record("vendedor", 10, 5, 1, "https://www.mercadolivre.com.br/item/123")
	shop := record("loja", 10, 5, 1, "https://loja.com.br")

	opts := models.SearchOptions{Query: "tenis", ExcludeMarketplaces: true, MinDays: 3}
	out := p.Run([]models.AdRecord{mp, shop}, opts)
	require.Len(t, out, 2)

	var excluded *models.AdRecord
	for i := range out {
		if out[i].Ad.AdvertiserName == "vendedor" {
			excluded = &out[i].Ad
		}
	}
	require.NotNil(t, excluded)
	assert.Equal(t, ExclusionMarketplace, excluded.ExclusionReason)

	// Soft-excluded records bypass the threshold filters.
	opts.MinDays = 100
	out = p.Run([]models.AdRecord{mp, shop}, opts)
	require.Len(t, out, 1)
	assert.Equal(t, "vendedor", out[0].Ad.AdvertiserName)
}

func TestRunHardFilters(t *testing.T) {
	p := New(nil)
	recent := record("recent", 10, 2, 1, "")
	small := record("small", 1, 30, 1, "")
	keeper := record("keeper", 10, 30, 1, "")

	opts := models.SearchOptions{Query: "q", MinDays: 5, MinActiveAds: 5}
	out := p.Run([]models.AdRecord{recent, small, keeper}, opts)
	require.Len(t, out, 1)
	assert.Equal(t, "keeper", out[0].Ad.AdvertiserName)
}

func TestRunDerivesDropshippingWhenUnset(t *testing.T) {
	p := New(nil)
	rec := record("loja", 10, 5, 1, "https://superloja.myshopify.com/products/abc")
	out := p.Run([]models.AdRecord{rec}, models.SearchOptions{Query: "q"})
	require.Len(t, out, 1)
	assert.True(t, out[0].Ad.IsProbableDropshipping)
}

func TestRunPairsQueryAndCountry(t *testing.T) {
	p := New(nil)
	out := p.Run([]models.AdRecord{record("loja", 10, 5, 1, "")}, models.SearchOptions{Query: "tenis corrida"})
	require.Len(t, out, 1)
	assert.Equal(t, "tenis corrida", out[0].Query)
	assert.Equal(t, models.Country, out[0].Country)
}

func TestRunItemsIdempotent(t *testing.T) {
	p := New(nil)
	records := []models.AdRecord{
		record("a", 40, 50, 3, "https://a.com.br"),
		record("b", 10, 5, 1, "https://b.com.br"),
		record("c", 0, 0, 1, "https://c.com.br"),
	}
	opts := models.SearchOptions{Query: "q", MinDays: 1}

	first := p.Run(records, opts)
	second := p.RunItems(first, opts)
	assert.Equal(t, first, second)
}
