package extract

import (
	"net/url"
	"strings"
)

// Default deny-list of known marketplace domains. Kept as data, not logic:
// deployments may override the set through configuration.
var DefaultMarketplacePatterns = []string{
	"mercadolivre.com", "mercadolibre.com",
	"amazon.com", "amazon.com.br",
	"shopee.com.br",
	"magazineluiza.com.br", "magalu.com.br",
	"americanas.com.br",
	"casasbahia.com.br",
	"submarino.com.br",
	"extra.com.br",
	"pontofrio.com.br",
}

// Default markers of dropshipping storefronts: storefront-builder domains and
// checkout-ish path fragments.
var DefaultDropshippingPatterns = []string{
	"myshopify.com",
	"/products/",
	"yampi.com.br",
	"appmax.com.br",
	"cartpanda.com.br",
	"nuvemshop.com.br",
	"tray.com.br",
	"loja.com.br",
	"checkout",
	"comprar-agora",
	"add-to-cart",
	"produto-",
}

// URLClassifier classifies landing URLs by substring matching against its
// pattern sets. Both predicates are independent heuristics; a URL may satisfy
// both. The zero value matches nothing; use NewURLClassifier.
type URLClassifier struct {
	marketplaces []string
	dropshipping []string
}

// NewURLClassifier builds a classifier with the given pattern sets. Empty
// slices fall back to the package defaults.
func NewURLClassifier(marketplaces, dropshipping []string) *URLClassifier {
	if len(marketplaces) == 0 {
		marketplaces = DefaultMarketplacePatterns
	}
	if len(dropshipping) == 0 {
		dropshipping = DefaultDropshippingPatterns
	}
	return &URLClassifier{marketplaces: marketplaces, dropshipping: dropshipping}
}

// DefaultURLClassifier returns a classifier with the default pattern sets.
func DefaultURLClassifier() *URLClassifier {
	return NewURLClassifier(nil, nil)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// IsMarketplace reports whether the URL points at a known marketplace.
// An empty URL is not a marketplace.
func (c *URLClassifier) IsMarketplace(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	return containsAny(strings.ToLower(rawURL), c.marketplaces)
}

// IsProbableDropshipping reports whether the URL looks like a dropshipping
// storefront. Cheap heuristic, not authoritative.
func (c *URLClassifier) IsProbableDropshipping(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	return containsAny(strings.ToLower(rawURL), c.dropshipping)
}

// ExtractDomain returns the lowercased host component of the URL, or "" when
// the URL is absent or unparsable. Never errors.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
