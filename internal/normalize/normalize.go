// Package normalize converts locale-ambiguous strings from OCR output
// into canonical machine types: amounts, percentages, dates and currency
// codes, plus lightweight language detection used to select the
// per-language business-term dictionary.
//
// Every function here is total: unparseable input yields a false/sentinel
// return, never an error. Downstream consumers treat a failed
// normalization as "field not extracted", not as a pipeline failure.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CurrencyCode is a detected invoice currency.
type CurrencyCode string

const (
	CurrencyEUR     CurrencyCode = "EUR"
	CurrencyUSD     CurrencyCode = "USD"
	CurrencyGBP     CurrencyCode = "GBP"
	CurrencyCHF     CurrencyCode = "CHF"
	CurrencyUnknown CurrencyCode = "UNKNOWN"
)

var (
	// \s is ASCII-only in RE2; OCR output from French invoices uses
	// non-breaking (U+00A0) and narrow non-breaking (U+202F) spaces as
	// digit group separators, so both are stripped explicitly.
	currencyStripRe = regexp.MustCompile(`[€$£¥\sA-Z\x{00A0}\x{202F}]`)
	percentStripRe  = regexp.MustCompile(`[%\s\x{00A0}\x{202F}]`)
	dateRe          = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
)

// Amount converts a monetary string to a float.
//
// Handles both continental and anglophone separator conventions:
//
//	"1 829,17 €"  → 1829.17
//	"1.200,50"    → 1200.50
//	"1,200.50"    → 1200.50
//	"1,200"       → 1200.00
//
// When both comma and dot are present, the rightmost separator is the
// decimal one; a lone comma is decimal only when at most two digits
// follow it. Returns false on unparseable residue.
func Amount(s string) (float64, bool) {
	v := currencyStripRe.ReplaceAllString(strings.TrimSpace(s), "")
	if v == "" {
		return 0, false
	}

	hasComma := strings.Contains(v, ",")
	hasDot := strings.Contains(v, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(v, ",") > strings.LastIndex(v, ".") {
			// Continental: "1.200,50"
			v = strings.ReplaceAll(v, ".", "")
			v = strings.ReplaceAll(v, ",", ".")
		} else {
			// Anglophone: "1,200.50"
			v = strings.ReplaceAll(v, ",", "")
		}
	case hasComma:
		parts := strings.Split(v, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// Decimal comma: "100,50"
			v = strings.ReplaceAll(v, ",", ".")
		} else {
			// Thousands separator: "1,200"
			v = strings.ReplaceAll(v, ",", "")
		}
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Percentage converts a percentage string ("20,00%", "5.5%", "19 %") to a
// float. Returns false on failure.
func Percentage(s string) (float64, bool) {
	v := percentStripRe.ReplaceAllString(s, "")
	v = strings.ReplaceAll(v, ",", ".")
	if v == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Date normalizes day-first dates ("15/01/2024", "5-3-99") to ISO
// YYYY-MM-DD. Two-digit years below 70 are expanded into the 2000s,
// the rest into the 1900s. Input that does not match the day-first
// pattern is returned unchanged; month-first disambiguation needs
// language context this layer does not have.
func Date(s string) string {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := m[3]
	if len(year) == 2 {
		if yy, _ := strconv.Atoi(year); yy >= 70 {
			year = "19" + year
		} else {
			year = "20" + year
		}
	}
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// Currency detects the currency of an amount string by symbol or code.
// When several symbols co-occur, the first match in the fixed priority
// order EUR, USD, GBP, CHF wins.
func Currency(s string) CurrencyCode {
	if s == "" {
		return CurrencyUnknown
	}

	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(s, "€") || strings.Contains(upper, "EUR"):
		return CurrencyEUR
	case strings.Contains(s, "$") || strings.Contains(upper, "USD"):
		return CurrencyUSD
	case strings.Contains(s, "£") || strings.Contains(upper, "GBP"):
		return CurrencyGBP
	case strings.Contains(upper, "CHF"):
		return CurrencyCHF
	}
	return CurrencyUnknown
}

// stripDiacritics lowercases text and removes combining marks, so that
// "désignation" counts as "designation".
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// DetectLanguage classifies document text as French, English or generic
// by counting business-keyword hits. A tie with nonzero counts resolves
// to French, since the keyword sets target French-market invoices first.
// Zero hits on both sides yields LangGeneric.
func DetectLanguage(text string) Language {
	normalized := stripDiacritics(text)

	frScore := 0
	for _, w := range frenchKeywords {
		if strings.Contains(normalized, w) {
			frScore++
		}
	}
	enScore := 0
	for _, w := range englishKeywords {
		if strings.Contains(normalized, w) {
			enScore++
		}
	}

	switch {
	case frScore == 0 && enScore == 0:
		return LangGeneric
	case enScore > frScore:
		return LangEN
	default:
		return LangFR
	}
}

// Text cleans OCR text universally: non-breaking and narrow non-breaking
// spaces become plain spaces and runs of whitespace collapse to one.
// When a term dictionary is given, the text is lowercased and each
// business term is replaced by its standardized field name on word
// boundaries.
func Text(s string, dict TermDictionary) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")

	if len(dict) == 0 {
		return strings.TrimSpace(s)
	}

	s = strings.ToLower(s)
	for _, term := range dict.terms() {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		s = re.ReplaceAllString(s, dict[term])
	}
	return strings.TrimSpace(s)
}
