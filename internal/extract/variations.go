package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// maxVariations bounds the estimate against absurd numbers in ad copy.
const maxVariations = 20

// Cardinality cues, tried in priority order. The first match wins.
var variationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:versões|variações|opções)`),
	regexp.MustCompile(`disponível\s+em\s+(\d+)`),
	regexp.MustCompile(`(\d+)\s*cores`),
	regexp.MustCompile(`(\d+)\s*tamanhos`),
}

// EstimateVariations scans ad text for explicit variation cues ("3 cores",
// "disponível em 5") and returns the bounded count. Returns 1 when the text
// is empty, no cue matches, or the captured number does not parse.
func EstimateVariations(text string) int {
	if text == "" {
		return 1
	}
	lower := strings.ToLower(text)
	for _, re := range variationPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxVariations {
			return maxVariations
		}
		return n
	}
	return 1
}
