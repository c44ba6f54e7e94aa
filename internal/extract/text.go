package extract

import (
	"regexp"
	"strings"
)

var reWhitespace = regexp.MustCompile(`[\s\v]+`)

// Leading label prefixes stripped from headlines. Only the first match is
// removed, and only when the headline starts with it.
var headlinePrefixes = []string{
	"Anúncio",
	"Ad:",
	"Sponsored:",
	"Patrocinado:",
}

// NormalizeText collapses runs of whitespace (including newlines) to a single
// space, trims the ends and drops control characters (0x00-0x1F, 0x7F-0x9F).
// Empty input yields "". Idempotent.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	// Control characters are dropped before the whitespace collapse; the
	// ASCII whitespace controls (\t..\r) survive to be collapsed below.
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && (r < '\t' || r > '\r') {
			continue
		}
		if r >= 0x7f && r <= 0x9f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(reWhitespace.ReplaceAllString(b.String(), " "))
}

// CleanHeadline strips the first matching known label prefix from the start
// of the headline, then normalizes it.
func CleanHeadline(headline string) string {
	if headline == "" {
		return ""
	}
	for _, prefix := range headlinePrefixes {
		if strings.HasPrefix(headline, prefix) {
			headline = strings.TrimSpace(strings.TrimPrefix(headline, prefix))
			break
		}
	}
	return NormalizeText(headline)
}
