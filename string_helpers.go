package main

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var placeTitleCaser = cases.Title(language.AmericanEnglish)

// titleCasePlace converts a lowercased place name into display form,
// e.g. "new york" -> "New York".
func titleCasePlace(place string) string {
	return placeTitleCaser.String(place)
}

// normalizePlaceName produces the canonical key used for cache entries and
// the locations archive: lowercased, diacritics stripped, whitespace
// collapsed to single spaces. "São  Paulo" and "sao paulo" normalize to the
// same key. Falls back to simple lowercasing if the transform chain fails on
// unusual input.
func normalizePlaceName(place string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, place)
	if err != nil {
		stripped = place
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
