package models

// Fragment is one raw, partially-structured ad as discovered by an
// acquisition backend, before any normalization. Candidate slices are ordered
// by extraction priority; the record builder accepts the first non-trivial
// entry. Every field may be empty.
type Fragment struct {
	AdID           string
	AdvertiserName string
	AdvertiserURL  string
	// HeadlineCandidates and TextCandidates hold the raw text found by each
	// selector in the backend's fallback chain, in chain order.
	HeadlineCandidates []string
	TextCandidates     []string
	// LandingURLCandidates are hrefs in link-priority order.
	LandingURLCandidates []string
	// DateText is the raw start-date phrase, e.g. "Ad started Mar 3, 2025"
	// or "iniciou em 3 de marco de 2025".
	DateText string
	HasVideo bool
	HasImage bool
	// ContextURL is the library results page the fragment was found on.
	ContextURL string
	// ActiveStatus as reported by the listing; defaults to "active".
	ActiveStatus string
	// AdvertiserActiveAdsEst is filled by the acquisition layer for a bounded
	// prefix of each batch, 0 otherwise.
	AdvertiserActiveAdsEst int
}

// Empty reports whether the fragment carries nothing usable: no advertiser,
// no text of either kind, and no landing link. Such fragments are skipped.
func (f Fragment) Empty() bool {
	if f.AdvertiserName != "" || f.DateText != "" {
		return false
	}
	for _, h := range f.HeadlineCandidates {
		if h != "" {
			return false
		}
	}
	for _, t := range f.TextCandidates {
		if t != "" {
			return false
		}
	}
	for _, u := range f.LandingURLCandidates {
		if u != "" {
			return false
		}
	}
	return true
}
