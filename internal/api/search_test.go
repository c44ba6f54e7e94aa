package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adscout-br/adscout/internal/acquire"
	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/models"
	"github.com/adscout-br/adscout/internal/observability"
)

// stubAcquirer returns canned fragments or a canned error.
type stubAcquirer struct {
	frags []models.Fragment
	err   error
}

func (s *stubAcquirer) Fetch(ctx context.Context, query string, depth models.Depth) ([]models.Fragment, error) {
	return s.frags, s.err
}

func (s *stubAcquirer) Name() string { return "stub" }

func newTestServer(acq acquire.Acquirer) *Server {
	cfg := config.Config{
		Backend:               config.BackendDemo,
		MaxAds:                50,
		AdvertiserLookupLimit: 10,
		RetryLimit:            2,
	}
	return NewServer(zap.NewNop(), &observability.NoOpRegistry{}, cfg, acq, nil)
}

func postSearch(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	s.SearchHandler(w, req)
	return w
}

func TestSearchRejectsMalformedBody(t *testing.T) {
	s := newTestServer(&stubAcquirer{})
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.SearchHandler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRejectsInvalidOptions(t *testing.T) {
	s := newTestServer(&stubAcquirer{})

	w := postSearch(t, s, models.SearchOptions{Query: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "query")

	w = postSearch(t, s, models.SearchOptions{Query: "tenis", Depth: "turbo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "depth")
}

func TestSearchBlockedOutcome(t *testing.T) {
	s := newTestServer(&stubAcquirer{err: acquire.ErrBlocked})

	w := postSearch(t, s, models.SearchOptions{Query: "tenis"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		NeedsManualSolve bool   `json:"needs_manual_solve"`
		Message          string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.NeedsManualSolve)
	assert.NotEmpty(t, resp.Message)
}

func TestSearchAcquisitionFailure(t *testing.T) {
	s := newTestServer(&stubAcquirer{err: errors.New("browser crashed")})

	w := postSearch(t, s, models.SearchOptions{Query: "tenis"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSearchEmptyResultIsValid(t *testing.T) {
	s := newTestServer(&stubAcquirer{})

	w := postSearch(t, s, models.SearchOptions{Query: "tenis"})
	require.Equal(t, http.StatusOK, w.Code)

	var results []models.ResultItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results, 0)
	// An empty result is a JSON array, not null.
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestSearchBuildsAndRanksResults(t *testing.T) {
	s := newTestServer(&stubAcquirer{frags: []models.Fragment{
		{
			AdvertiserName:         "Loja Pequena",
			TextCandidates:         []string{"Oferta da semana em produtos selecionados"},
			LandingURLCandidates:   []string{"https://lojapequena.com.br"},
			AdvertiserActiveAdsEst: 10,
		},
		{
			AdvertiserName:         "Loja Grande",
			TextCandidates:         []string{"Mais vendidos do ano com frete grátis, disponível em 3 cores"},
			LandingURLCandidates:   []string{"https://lojagrande.com.br"},
			AdvertiserActiveAdsEst: 40,
		},
		{}, // unusable fragment, discarded
	}})

	w := postSearch(t, s, models.SearchOptions{Query: "tenis"})
	require.Equal(t, http.StatusOK, w.Code)

	var results []models.ResultItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "Loja Grande", results[0].Ad.AdvertiserName)
	assert.Equal(t, "Loja Pequena", results[1].Ad.AdvertiserName)
	assert.Greater(t, results[0].Ad.Score, results[1].Ad.Score)
	assert.Equal(t, "tenis", results[0].Query)
	assert.Equal(t, models.Country, results[0].Country)
}

func TestSearchSoftExcludesMarketplace(t *testing.T) {
	s := newTestServer(&stubAcquirer{frags: []models.Fragment{
		{
			AdvertiserName:       "Vendedor ML",
			TextCandidates:       []string{"Aproveite a oferta imperdível de hoje"},
			LandingURLCandidates: []string{"https://www.mercadolivre.com.br/item/123"},
		},
	}})

	w := postSearch(t, s, models.SearchOptions{Query: "tenis", ExcludeMarketplaces: true})
	require.Equal(t, http.StatusOK, w.Code)

	var results []models.ResultItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Marketplace", results[0].Ad.ExclusionReason)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(&stubAcquirer{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.HealthHandler(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","backend":"stub"}`, w.Body.String())
}

func TestStatusHandler(t *testing.T) {
	s := newTestServer(&stubAcquirer{})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	s.StatusHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp["status"])
	assert.Equal(t, "stub", resp["backend"])
	assert.Equal(t, false, resp["cache_enabled"])
	assert.Equal(t, float64(50), resp["max_ads_per_search"])
}
