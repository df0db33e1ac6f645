package pagex

import "strings"

// Policy holds the heuristic filtering rules the listing pipeline applies
// to located posts. The rules are page-family-specific and expected to
// misfire on unrelated sites, so they are injected configuration rather
// than hard-coded logic.
type Policy struct {
	// ArticlePathMarker is the URL path segment that distinguishes genuine
	// article links from navigation and ad links (e.g. "/archives/").
	ArticlePathMarker string

	// MinTitleLength is the minimum rune count a post title must have to
	// survive filtering.
	MinTitleLength int

	// PlaceholderTitle is a known stand-in title that marks a post as
	// having no real title.
	PlaceholderTitle string

	// AdKeywords are case-insensitive substrings that mark a title as
	// advertising.
	AdKeywords []string

	// PromoHandles are known promotional account names excluded from
	// category accumulation.
	PromoHandles []string

	// RequireSameHost drops posts whose link hostname differs from the
	// listing page's hostname.
	RequireSameHost bool
}

// DefaultPolicy returns the rule set tuned for the page family this engine
// was built against.
func DefaultPolicy() Policy {
	return Policy{
		ArticlePathMarker: "/archives/",
		MinTitleLength:    5,
		PlaceholderTitle:  "无标题",
		AdKeywords:        []string{"广告", "推广", "赞助", "advertisement", "ad", "sponsor", "promo"},
		PromoHandles:      []string{"小瓜妹", "91瓜叔", "瓜爷", "传瓜哥", "瓜姐姐"},
		RequireSameHost:   true,
	}
}

// IsAdTitle reports whether title contains any blocked advertising keyword.
func (p Policy) IsAdTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range p.AdKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsPromoHandle reports whether s is a blocked promotional handle.
func (p Policy) IsPromoHandle(s string) bool {
	for _, h := range p.PromoHandles {
		if strings.EqualFold(s, h) {
			return true
		}
	}
	return false
}
