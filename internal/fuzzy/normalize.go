// Package fuzzy computes normalized similarity scores between free-text
// company and person names.
package fuzzy

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixRe strips common legal entity suffixes before comparison so
// that "Acme West LLC" and "Acme West" compare as the same name.
var legalSuffixRe = regexp.MustCompile(
	`(?i)\s*,?\s*(llc|l\.?l\.?c\.?|inc\.?|incorporated|corp\.?|corporation|` +
		`co\.?|company|ltd\.?|limited|l\.?p\.?|llp|l\.?l\.?p\.?|` +
		`pllc|p\.?l\.?l\.?c\.?|p\.?c\.?|p\.?a\.?|plc|p\.?l\.?c\.?|` +
		`group|holdings|enterprises|dba|d/b/a)\s*\.?\s*$`)

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// foldDiacritics decomposes accented characters and drops the combining
// marks, so "Café" normalizes to "Cafe".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a company or person name for comparison:
// lowercase, diacritics folded, legal suffixes removed, punctuation replaced
// with spaces, whitespace collapsed.
func NormalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}

	if folded, _, err := transform.String(foldDiacritics, n); err == nil {
		n = folded
	}

	n = legalSuffixRe.ReplaceAllString(n, "")
	n = strings.ReplaceAll(n, "&", " and ")
	n = nonAlnumRe.ReplaceAllString(n, " ")
	n = multiSpaceRe.ReplaceAllString(n, " ")

	return strings.TrimSpace(n)
}

// Tokens splits a normalized name into its word tokens.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
