package acquire

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/extract"
	"github.com/adscout-br/adscout/internal/models"
	"go.uber.org/zap"
)

// Fragment caps for the browser-free backend, by depth. Without scrolling
// the server-rendered page only exposes so much; depth just bounds how much
// of it is kept.
var staticCapByDepth = map[models.Depth]int{
	models.DepthFast:     10,
	models.DepthStandard: 25,
	models.DepthDeep:     50,
}

// goquery drops the :not() qualifier variant used by the browser backend, so
// the static chain uses the plain role selector last.
var staticLinkSelectors = []string{
	`a[href*="l.facebook.com"]`,
	`a[data-testid="ad-link"]`,
	`a[role="link"]`,
}

// StaticAcquirer fetches the server-rendered listing over plain HTTP and
// extracts fragments with goquery. It sees only what the initial page render
// carries; script-loaded ads are invisible to it. Useful where a browser is
// unavailable.
type StaticAcquirer struct {
	cfg    config.Config
	logger *zap.Logger
	est    *estimator
	client *http.Client
}

// NewStaticAcquirer constructs the HTTP backend.
func NewStaticAcquirer(cfg config.Config, logger *zap.Logger, est *estimator) *StaticAcquirer {
	return &StaticAcquirer{
		cfg:    cfg,
		logger: logger,
		est:    est,
		client: &http.Client{Timeout: cfg.NavTimeout},
	}
}

func (a *StaticAcquirer) Name() string { return config.BackendStatic }

// Fetch downloads the listing page and extracts one fragment per ad
// container found in the static HTML.
func (a *StaticAcquirer) Fetch(ctx context.Context, query string, depth models.Depth) ([]models.Fragment, error) {
	target := librarySearchURL(query)
	doc, err := a.fetchDocument(ctx, target)
	if err != nil {
		return nil, err
	}

	if pageLooksBlocked(doc) {
		return nil, ErrBlocked
	}

	var containers *goquery.Selection
	for _, sel := range adContainerSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			containers = s
			break
		}
	}
	if containers == nil {
		a.logger.Warn("no ad containers in static page", zap.String("query", query))
		return nil, nil
	}

	limit, ok := staticCapByDepth[depth]
	if !ok {
		limit = staticCapByDepth[models.DepthStandard]
	}
	if limit > a.cfg.MaxAds {
		limit = a.cfg.MaxAds
	}

	var frags []models.Fragment
	containers.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		frags = append(frags, staticFragment(s, target))
		return len(frags) < limit
	})

	a.est.annotate(ctx, frags, a.lookupActiveAds)

	return frags, nil
}

func (a *StaticAcquirer) fetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[0])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing html: %w", err)
	}
	return doc, nil
}

func pageLooksBlocked(doc *goquery.Document) bool {
	for _, sel := range captchaSelectors {
		// :has-text and i-flag selectors are browser-engine features; skip
		// anything cascadia cannot compile.
		if strings.Contains(sel, " i]") {
			continue
		}
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	body := strings.ToLower(doc.Find("body").Text())
	for _, marker := range challengeMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

func staticFragment(s *goquery.Selection, contextURL string) models.Fragment {
	frag := models.Fragment{ContextURL: contextURL}

	adv := s.Find(advertiserSelector).First()
	if adv.Length() > 0 {
		frag.AdvertiserName = adv.Text()
		frag.AdvertiserURL = adv.AttrOr("href", "")
	}

	for _, sel := range headlineSelectors {
		if t := s.Find(sel).First().Text(); t != "" {
			frag.HeadlineCandidates = append(frag.HeadlineCandidates, t)
		}
	}
	for _, sel := range textSelectors {
		if t := s.Find(sel).First().Text(); t != "" {
			frag.TextCandidates = append(frag.TextCandidates, t)
		}
	}
	for _, sel := range staticLinkSelectors {
		if href := s.Find(sel).First().AttrOr("href", ""); href != "" {
			frag.LandingURLCandidates = append(frag.LandingURLCandidates, href)
		}
	}

	// Date selectors with :has-text() need a browser engine; in static HTML
	// fall back to attribute and class based lookups only.
	if t := s.Find(`[aria-label*="started"]`).First().Text(); t != "" {
		frag.DateText = t
	} else if t := s.Find(".ad-creation-date").First().Text(); t != "" {
		frag.DateText = t
	}

	frag.HasVideo = s.Find("video").Length() > 0
	frag.HasImage = s.Find("img").Length() > 0

	for _, href := range frag.LandingURLCandidates {
		if id := extract.AdIDFromURL(href); id != "" {
			frag.AdID = id
			break
		}
	}

	return frag
}

// lookupActiveAds fetches the advertiser's library page and reads its
// results counter from the static HTML.
func (a *StaticAcquirer) lookupActiveAds(ctx context.Context, advertiserURL string) (int, error) {
	if !strings.Contains(advertiserURL, "facebook.com") {
		return 0, nil
	}
	m := pageIDRe.FindStringSubmatch(advertiserURL)
	if m == nil {
		return 0, nil
	}

	doc, err := a.fetchDocument(ctx, advertiserAdsURL(m[1]))
	if err != nil {
		return 0, err
	}

	for _, sel := range resultCountSelectors {
		if strings.Contains(sel, ":has-text") {
			continue
		}
		text := doc.Find(sel).First().Text()
		if text == "" {
			continue
		}
		cleaned := strings.NewReplacer(",", "", ".", "").Replace(text)
		if num := digitsRe.FindString(cleaned); num != "" {
			if n, err := strconv.Atoi(num); err == nil {
				return n, nil
			}
		}
	}
	return 0, nil
}
