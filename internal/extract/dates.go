package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// canonicalDateLayout is the normalized form every parsed date is reduced to.
const canonicalDateLayout = "2006-01-02"

// Portuguese month names and their accepted abbreviations. Month names not in
// this table resolve to January, matching the listing's fixed locale.
var monthsPT = map[string]string{
	"janeiro": "01", "jan": "01",
	"fevereiro": "02", "fev": "02",
	"março": "03", "marco": "03", "mar": "03",
	"abril": "04", "abr": "04",
	"maio": "05", "mai": "05",
	"junho": "06", "jun": "06",
	"julho": "07", "jul": "07",
	"agosto": "08", "ago": "08",
	"setembro": "09", "set": "09",
	"outubro": "10", "out": "10",
	"novembro": "11", "nov": "11",
	"dezembro": "12", "dez": "12",
}

var (
	reNumericDMY = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	reISODate    = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	rePTLongDate = regexp.MustCompile(`(\d{1,2})\s+de\s+(\p{L}+)\s+de\s+(\d{4})`)
	reMonthFirst = regexp.MustCompile(`(\p{L}+)\s+(\d{1,2}),?\s+(\d{4})`)
	reDayFirst   = regexp.MustCompile(`(\d{1,2})\s+(\p{L}+)\s+(\d{4})`)
)

func monthNumber(name string) string {
	if m, ok := monthsPT[strings.ToLower(name)]; ok {
		return m
	}
	return "01"
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// ParseDateAny parses free-form date text in Portuguese or English, possibly
// embedded in a longer phrase, and returns the canonical YYYY-MM-DD form. It
// first attempts a general day-first parse, then falls back to explicit
// patterns in priority order. Returns "" when nothing matches; never errors.
func ParseDateAny(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if t, err := dateparse.ParseAny(text, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format(canonicalDateLayout)
	}

	lower := strings.ToLower(text)

	if m := reNumericDMY.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
	}
	if m := reISODate.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
	}
	if m := rePTLongDate.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], monthNumber(m[2]), pad2(m[1]))
	}
	if m := reMonthFirst.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], monthNumber(m[1]), pad2(m[2]))
	}
	if m := reDayFirst.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], monthNumber(m[2]), pad2(m[1]))
	}
	return ""
}

// DaysBetween returns the number of whole days from the canonical date string
// to the reference date, clamped at zero. A missing or unparsable date yields
// zero. The reference date is a parameter so callers and tests control "now".
func DaysBetween(dateStr string, ref time.Time) int {
	if dateStr == "" {
		return 0
	}
	start, err := time.Parse(canonicalDateLayout, dateStr)
	if err != nil {
		return 0
	}
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	days := int(refDay.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
