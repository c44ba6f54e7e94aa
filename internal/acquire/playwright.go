package acquire

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/adscout-br/adscout/internal/config"
	"github.com/adscout-br/adscout/internal/extract"
	"github.com/adscout-br/adscout/internal/models"
	"go.uber.org/zap"
)

// Selector fallback chains. Order is a deliberate priority policy: the first
// selector that yields usable content wins.
var (
	captchaSelectors = []string{
		`[data-testid="captcha"]`,
		`.captcha`,
		`#captcha`,
		`iframe[src*="captcha"]`,
		`iframe[src*="recaptcha"]`,
		`.g-recaptcha`,
		`[aria-label*="captcha" i]`,
		`[aria-label*="verification" i]`,
	}
	adContainerSelectors = []string{
		`[data-testid="political_ad"]`,
		`[role="article"]`,
		`.ad-library-result`,
		`[data-pagelet*="ad"]`,
	}
	advertiserSelector = `[data-testid="page-name-link"], [role="link"][aria-label*="Page"]`
	headlineSelectors  = []string{
		`[data-testid="ad-title"]`,
		`[role="heading"]`,
		`h3`,
		`.ad-creative-title`,
	}
	textSelectors = []string{
		`[data-testid="ad-text"]`,
		`.userContent`,
		`[role="article"] p`,
		`.ad-creative-body`,
	}
	linkSelectors = []string{
		`a[href*="l.facebook.com"]`,
		`a[data-testid="ad-link"]`,
		`a[role="link"]:not([aria-label*="Page"])`,
	}
	dateSelectors = []string{
		`[aria-label*="started"]`,
		`span:has-text("started")`,
		`span:has-text("iniciou")`,
		`.ad-creation-date`,
	}
	resultCountSelectors = []string{
		`[data-testid="results-count"]`,
		`.ads-library-results-count`,
		`span:has-text("results")`,
		`span:has-text("resultados")`,
	}
)

var challengeMarkers = []string{"captcha", "verification", "robot", "human"}

// A small rotation of desktop user agents for the browser context.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0",
}

var digitsRe = regexp.MustCompile(`\d+`)

// PlaywrightAcquirer drives a headless Chromium session per search. The
// browser is launched and torn down inside Fetch; no browser state survives
// a request.
type PlaywrightAcquirer struct {
	cfg    config.Config
	logger *zap.Logger
	est    *estimator
}

// NewPlaywrightAcquirer constructs the browser-driven backend.
func NewPlaywrightAcquirer(cfg config.Config, logger *zap.Logger, est *estimator) *PlaywrightAcquirer {
	return &PlaywrightAcquirer{cfg: cfg, logger: logger, est: est}
}

func (a *PlaywrightAcquirer) Name() string { return config.BackendPlaywright }

// Fetch navigates to the listing, scrolls per depth and extracts one
// fragment per ad container found.
func (a *PlaywrightAcquirer) Fetch(ctx context.Context, query string, depth models.Depth) ([]models.Fragment, error) {
	run, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	defer func() { _ = run.Stop() }()

	browser, err := run.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(a.cfg.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	bctx, err := browser.NewContext(pw.BrowserNewContextOptions{
		UserAgent: pw.String(userAgents[rand.Intn(len(userAgents))]),
		Viewport:  &pw.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	page.SetDefaultTimeout(float64(a.cfg.NavTimeout.Milliseconds()))

	if err := a.navigate(ctx, page, query); err != nil {
		return nil, err
	}

	a.scroll(ctx, page, depth)

	elements := a.findAdContainers(page)
	if len(elements) == 0 {
		a.logger.Warn("no ad containers matched any selector", zap.String("query", query))
		return nil, nil
	}
	if len(elements) > a.cfg.MaxAds {
		elements = elements[:a.cfg.MaxAds]
	}
	a.logger.Info("ad containers located", zap.Int("count", len(elements)), zap.String("query", query))

	frags := make([]models.Fragment, 0, len(elements))
	for _, el := range elements {
		if ctx.Err() != nil {
			break
		}
		frags = append(frags, a.extractFragment(el, page.URL()))
	}

	a.est.annotate(ctx, frags, func(ctx context.Context, advertiserURL string) (int, error) {
		return a.lookupActiveAds(browser, advertiserURL)
	})

	return frags, nil
}

// navigate loads the listing search page, retrying on failure, and checks
// for an anti-automation challenge.
func (a *PlaywrightAcquirer) navigate(ctx context.Context, page pw.Page, query string) error {
	target := librarySearchURL(query)
	var lastErr error
	for attempt := 0; attempt <= a.cfg.RetryLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
		if _, err := page.Goto(target, pw.PageGotoOptions{
			WaitUntil: pw.WaitUntilStateDomcontentloaded,
		}); err != nil {
			lastErr = err
			a.logger.Warn("navigation failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		if a.challengeVisible(page) {
			return ErrBlocked
		}

		if _, err := page.WaitForSelector(`[role="main"]`, pw.PageWaitForSelectorOptions{
			Timeout: pw.Float(10000),
		}); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("navigate to listing: %w", lastErr)
}

// challengeVisible checks both challenge selectors and page-content markers.
func (a *PlaywrightAcquirer) challengeVisible(page pw.Page) bool {
	for _, sel := range captchaSelectors {
		el, err := page.QuerySelector(sel)
		if err != nil || el == nil {
			continue
		}
		if visible, err := el.IsVisible(); err == nil && visible {
			return true
		}
	}
	content, err := page.Content()
	if err != nil {
		return false
	}
	lower := strings.ToLower(content)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (a *PlaywrightAcquirer) scroll(ctx context.Context, page pw.Page, depth models.Depth) {
	rounds, ok := scrollsByDepth[depth]
	if !ok {
		rounds = scrollsByDepth[models.DepthStandard]
	}
	for i := 0; i < rounds; i++ {
		if ctx.Err() != nil {
			return
		}
		if _, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight);"); err != nil {
			a.logger.Debug("scroll failed", zap.Error(err))
			return
		}
		time.Sleep(time.Duration(1000+rand.Intn(2000)) * time.Millisecond)
	}
}

func (a *PlaywrightAcquirer) findAdContainers(page pw.Page) []pw.ElementHandle {
	for _, sel := range adContainerSelectors {
		elements, err := page.QuerySelectorAll(sel)
		if err == nil && len(elements) > 0 {
			return elements
		}
	}
	return nil
}

// extractFragment runs every selector chain against one ad container. Each
// chain's raw results are kept in order; normalization happens downstream.
func (a *PlaywrightAcquirer) extractFragment(el pw.ElementHandle, contextURL string) models.Fragment {
	frag := models.Fragment{ContextURL: contextURL}

	if adv, err := el.QuerySelector(advertiserSelector); err == nil && adv != nil {
		if name, err := adv.InnerText(); err == nil {
			frag.AdvertiserName = name
		}
		if href, err := adv.GetAttribute("href"); err == nil {
			frag.AdvertiserURL = href
		}
	}

	frag.HeadlineCandidates = collectTexts(el, headlineSelectors)
	frag.TextCandidates = collectTexts(el, textSelectors)

	for _, sel := range linkSelectors {
		link, err := el.QuerySelector(sel)
		if err != nil || link == nil {
			continue
		}
		if href, err := link.GetAttribute("href"); err == nil && href != "" {
			frag.LandingURLCandidates = append(frag.LandingURLCandidates, href)
		}
	}

	for _, sel := range dateSelectors {
		d, err := el.QuerySelector(sel)
		if err != nil || d == nil {
			continue
		}
		if text, err := d.InnerText(); err == nil && text != "" {
			frag.DateText = text
			break
		}
	}

	if v, err := el.QuerySelector("video"); err == nil && v != nil {
		frag.HasVideo = true
	}
	if img, err := el.QuerySelector("img"); err == nil && img != nil {
		frag.HasImage = true
	}

	for _, href := range frag.LandingURLCandidates {
		if id := extract.AdIDFromURL(href); id != "" {
			frag.AdID = id
			break
		}
	}

	return frag
}

func collectTexts(el pw.ElementHandle, selectors []string) []string {
	var out []string
	for _, sel := range selectors {
		m, err := el.QuerySelector(sel)
		if err != nil || m == nil {
			continue
		}
		if text, err := m.InnerText(); err == nil && text != "" {
			out = append(out, text)
		}
	}
	return out
}

var pageIDRe = regexp.MustCompile(`/(\d+)/?`)

// lookupActiveAds opens the advertiser's library page in a fresh tab and
// reads its results counter.
func (a *PlaywrightAcquirer) lookupActiveAds(browser pw.Browser, advertiserURL string) (int, error) {
	if !strings.Contains(advertiserURL, "facebook.com") {
		return 0, nil
	}
	m := pageIDRe.FindStringSubmatch(advertiserURL)
	if m == nil {
		return 0, nil
	}

	page, err := browser.NewPage()
	if err != nil {
		return 0, fmt.Errorf("new page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if _, err := page.Goto(advertiserAdsURL(m[1]), pw.PageGotoOptions{
		Timeout: pw.Float(15000),
	}); err != nil {
		return 0, fmt.Errorf("advertiser page: %w", err)
	}
	time.Sleep(2 * time.Second)

	for _, sel := range resultCountSelectors {
		el, err := page.QuerySelector(sel)
		if err != nil || el == nil {
			continue
		}
		text, err := el.InnerText()
		if err != nil {
			continue
		}
		cleaned := strings.NewReplacer(",", "", ".", "").Replace(text)
		if num := digitsRe.FindString(cleaned); num != "" {
			n, err := strconv.Atoi(num)
			if err == nil {
				return n, nil
			}
		}
	}
	return 0, nil
}
