// Package goquery implements the pagex extraction pipelines on top of
// github.com/PuerkitoBio/goquery. Each pipeline is an ordered cascade of
// heuristic strategies: structured selector queries first, regex passes
// over raw markup as a distinct fallback tier. Absence of a match is a
// valid outcome, never an error.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// adExclusion filters out elements whose class or id carries an
// advertising signal. Attribute substring matches are case-sensitive, so
// both id forms are listed.
const adExclusion = `.ad, .advertisement, .ads, [class*="ad-"], [class*="-ad"], [id*="ad"], [id*="Ad"]`

// adClassExclusion is the narrower class-only variant applied before
// climbing to a card's structural ancestor.
const adClassExclusion = `.ad, .advertisement, .ads, [class*="ad-"], [class*="-ad"]`

// text returns the trimmed text content of a selection.
func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// attr returns the named attribute of a selection, or "" when absent.
func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}

// firstNonEmpty runs each strategy in order and returns the first
// non-empty result. It keeps every field's fallback cascade a flat,
// independently testable sequence instead of nested conditionals.
func firstNonEmpty(strategies ...func() string) string {
	for _, strategy := range strategies {
		if v := strategy(); v != "" {
			return v
		}
	}
	return ""
}
