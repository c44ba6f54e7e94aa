package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adscout-br/adscout/internal/models"
)

// Minimum useful lengths for candidate text. Shorter matches are treated as
// selector noise and the next candidate is tried.
const (
	minHeadlineLen = 5
	minBodyTextLen = 10
)

// ID-bearing URL shapes, tried in order.
var adIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`ad_id=([^&]+)`),
	regexp.MustCompile(`/ads/(\d+)`),
	regexp.MustCompile(`creative_id=([^&]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
}

// AdIDFromURL pulls an ad identifier out of a library URL, or "" when no
// known shape matches.
func AdIDFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	for _, re := range adIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// Builder composes the normalizers into per-fragment record construction.
// Now is injectable so days-active derivation is reproducible in tests.
type Builder struct {
	urls *URLClassifier
	now  func() time.Time
}

// NewBuilder returns a Builder using the given URL classifier. A nil
// classifier means the default pattern sets.
func NewBuilder(urls *URLClassifier) *Builder {
	if urls == nil {
		urls = DefaultURLClassifier()
	}
	return &Builder{urls: urls, now: time.Now}
}

// WithNow overrides the reference clock. Intended for tests.
func (b *Builder) WithNow(now func() time.Time) *Builder {
	b.now = now
	return b
}

// firstUsable returns the first candidate longer than min after trimming.
// Length is in runes, so accented text counts the same as plain ASCII.
func firstUsable(candidates []string, min int) string {
	for _, c := range candidates {
		if utf8.RuneCountInString(strings.TrimSpace(c)) > min {
			return c
		}
	}
	return ""
}

// firstLink returns the first candidate that looks like a real link: either
// an outbound redirect through the library's link wrapper or a plain
// absolute URL.
func firstLink(candidates []string) string {
	for _, href := range candidates {
		if href == "" {
			continue
		}
		if strings.Contains(href, "l.facebook.com") || strings.Contains(href, "http") {
			return href
		}
	}
	return ""
}

// Build turns one raw fragment into a normalized AdRecord. Fundamentally
// empty fragments yield ok=false and are meant to be logged and skipped by
// the caller; a partial fragment still yields a record with defaults for the
// missing fields. Build never fails on malformed field content.
func (b *Builder) Build(frag models.Fragment) (models.AdRecord, bool) {
	if frag.Empty() {
		return models.AdRecord{}, false
	}

	rec := models.NewAdRecord()
	rec.AdID = frag.AdID
	rec.AdvertiserName = NormalizeText(frag.AdvertiserName)
	rec.AdvertiserURL = frag.AdvertiserURL

	if h := firstUsable(frag.HeadlineCandidates, minHeadlineLen); h != "" {
		rec.Headline = CleanHeadline(h)
	}
	if t := firstUsable(frag.TextCandidates, minBodyTextLen); t != "" {
		rec.Text = NormalizeText(t)
	}

	rec.LandingURL = firstLink(frag.LandingURLCandidates)

	if d := ParseDateAny(frag.DateText); d != "" {
		rec.StartDate = d
		rec.DaysActive = DaysBetween(d, b.now())
	}

	switch {
	case frag.HasVideo:
		rec.MediaType = models.MediaTypeVideo
	case frag.HasImage:
		rec.MediaType = models.MediaTypeImage
	}

	rec.AdLibraryResultURL = frag.ContextURL
	if frag.ActiveStatus != "" {
		rec.ActiveStatus = frag.ActiveStatus
	}

	if rec.Text != "" || rec.Headline != "" {
		rec.VariationsCount = EstimateVariations(rec.Text + " " + rec.Headline)
	}

	if rec.LandingURL != "" {
		rec.IsProbableDropshipping = b.urls.IsProbableDropshipping(rec.LandingURL)
	}

	// The advertiser lookup happens in the acquisition layer; carry its
	// estimate through untouched.
	rec.AdvertiserActiveAdsEst = frag.AdvertiserActiveAdsEst

	return rec, true
}
