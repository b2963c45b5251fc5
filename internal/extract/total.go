// Package extract locates the total amount of an invoice inside noisy OCR
// text using keyword proximity and a bottom-up scan, with a largest-amount
// fallback. FindTotal is pure and side-effect free; the arbiter calls it
// once per candidate while scoring.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// amountRe matches a monetary amount: 1-3 leading digits, optional
// 3-digit thousands groups separated by space, NBSP or comma, and a
// mandatory 2-digit decimal group after dot or comma. The thousands
// separator is deliberately permissive to tolerate OCR noise; the 2-digit
// decimal group is strict so invoice numbers and dates are not captured.
var amountRe = regexp.MustCompile(`(?i)(\d{1,3}(?:[ \x{00A0},]\d{3})*(?:[.,]\d{2}))\s*(€|EUR|DT|TND)?`)

// totalKeywords are tested in order; a line matches if any keyword is a
// substring of its lowercased text.
var totalKeywords = []string{
	"total t.t.c",
	"total ttc",
	"total à payer",
	"total t.t.c.",
	"total",
}

// FindTotal scans full document text for the invoice total.
//
// Lines are scanned bottom-to-top, since totals conventionally sit near
// the end of the document. The first line containing a total keyword ends
// the keyword scan: if it carries an amount, that amount is returned;
// otherwise the search falls through to the global fallback, which
// returns the largest amount found anywhere in the text. The second
// return is false only when no amount pattern exists at all.
func FindTotal(fullText string) (string, bool) {
	lines := strings.Split(fullText, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		low := strings.ToLower(lines[i])
		if !containsAny(low, totalKeywords) {
			continue
		}
		if m := amountRe.FindStringSubmatch(lines[i]); m != nil {
			return cleanAmount(m[1]), true
		}
		// First keyword hit decides: no amount here means fallback,
		// not a continued scan upward.
		break
	}

	matches := amountRe.FindAllStringSubmatch(fullText, -1)
	if len(matches) == 0 {
		return "", false
	}

	cleaned := make([]string, len(matches))
	for i, m := range matches {
		cleaned[i] = cleanAmount(m[1])
	}

	best := 0.0
	parsedAll := true
	for _, c := range cleaned {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			parsedAll = false
			break
		}
		if v > best {
			best = v
		}
	}
	if !parsedAll {
		// Last resort: the final raw normalized match.
		return cleaned[len(cleaned)-1], true
	}
	return strconv.FormatFloat(best, 'f', -1, 64), true
}

// cleanAmount normalizes a matched amount: spaces and non-breaking spaces
// removed, decimal comma replaced by dot.
func cleanAmount(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, ",", ".")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
