package models

// Media type of an ad creative. Video takes precedence when both a video and
// an image marker are present on the same ad.
const (
	MediaTypeImage   = "image"
	MediaTypeVideo   = "video"
	MediaTypeUnknown = "unknown"
)

// AdRecord is one normalized ad as produced by the record builder. All string
// fields are optional; empty means the acquisition layer found nothing usable
// for that field. Text fields are whitespace-collapsed and free of control
// characters.
type AdRecord struct {
	AdID           string `json:"ad_id,omitempty"`
	AdvertiserName string `json:"advertiser_name,omitempty"`
	AdvertiserURL  string `json:"advertiser_url,omitempty"`
	LandingURL     string `json:"landing_url,omitempty"`
	Headline       string `json:"headline,omitempty"`
	Text           string `json:"text,omitempty"`
	MediaType      string `json:"media_type"`
	// StartDate is a canonical YYYY-MM-DD string, set only when the raw date
	// text parsed successfully.
	StartDate  string `json:"start_date,omitempty"`
	DaysActive int    `json:"days_active"`
	// ActiveStatus is carried through from the acquisition layer as-is.
	ActiveStatus    string `json:"active_status"`
	VariationsCount int    `json:"variations_count"`
	// AdvertiserActiveAdsEst is the acquisition layer's estimate of how many
	// ads the advertiser currently runs, capped at 500. Zero when no lookup
	// was performed for this fragment.
	AdvertiserActiveAdsEst int     `json:"advertiser_active_ads_est"`
	IsProbableDropshipping bool    `json:"is_probable_dropshipping"`
	ExclusionReason        string  `json:"exclusion_reason,omitempty"`
	Score                  float64 `json:"score"`
	AdLibraryResultURL     string  `json:"ad_library_result_url,omitempty"`
}

// NewAdRecord returns an AdRecord with the documented field defaults.
func NewAdRecord() AdRecord {
	return AdRecord{
		MediaType:       MediaTypeUnknown,
		ActiveStatus:    "active",
		VariationsCount: 1,
	}
}

// ResultItem pairs a query and country with one ad record. Items are created
// fresh per request and never shared across requests.
type ResultItem struct {
	Query   string   `json:"query"`
	Country string   `json:"country"`
	Ad      AdRecord `json:"ad"`
}
