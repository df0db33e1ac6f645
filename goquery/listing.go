package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagexio/pagex"
	"golang.org/x/net/html"
)

// Ensure ListingExtractor implements pagex.ListingExtractor at compile time.
var _ pagex.ListingExtractor = (*ListingExtractor)(nil)

var (
	loadBannerRe = regexp.MustCompile(`loadBannerDirect\s*\(\s*['"]([^'"]+)['"]`)
	cjkDateRe    = regexp.MustCompile(`\d{4}\s*年\s*\d{1,2}\s*月\s*\d{1,2}\s*日`)
	bulletLeadRe = regexp.MustCompile(`([^\s•·\n]{2,15}?)\s*[•·]`)
	hanRe        = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
	yearLeadRe   = regexp.MustCompile(`^\d{4}`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
	categoryRe   = regexp.MustCompile(`/category/([^/]+)`)
)

// lazyImageAttrs is the fixed priority order for an image's primary and
// lazy-load source attributes.
var lazyImageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "data-url", "data-lazy"}

// ListingExtractor locates repeating article cards on a listing page via an
// ordered strategy cascade, extracts per-card fields through per-field
// fallback cascades, extracts pagination metadata, and filters out
// advertising and noise entries according to the injected policy.
type ListingExtractor struct {
	policy pagex.Policy
}

// NewListingExtractor creates a ListingExtractor with the given filtering
// policy.
func NewListingExtractor(policy pagex.Policy) *ListingExtractor {
	return &ListingExtractor{policy: policy}
}

// ExtractListing parses html and extracts posts and pagination metadata.
// A page with no recognizable cards yields an empty post slice and nil
// pagination.
func (e *ListingExtractor) ExtractListing(rawHTML string, baseURL string) (*pagex.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagex.Errorf(pagex.EINTERNAL, "failed to parse HTML: %v", err)
	}

	cards := e.locateCards(doc)

	posts := make([]pagex.Post, 0, len(cards))
	for i, card := range cards {
		if post, ok := e.extractPost(card, baseURL, i+1); ok {
			posts = append(posts, post)
		}
	}

	// Secondary, looser single-pass cascade when the primary strategies
	// found nothing.
	if len(posts) == 0 {
		posts = e.loosePass(doc, baseURL)
	}

	return &pagex.Listing{
		Posts:      e.filterPosts(posts, baseURL),
		Pagination: extractPagination(doc, baseURL),
	}, nil
}

// locateCards runs the card location cascade. The first strategy yielding
// at least one element after ad exclusion wins. Results are de-duplicated
// by node identity in document order.
func (e *ListingExtractor) locateCards(doc *goquery.Document) []*goquery.Selection {
	markerLink := fmt.Sprintf(`a[href*=%q]`, e.policy.ArticlePathMarker)

	// Strategy 1: self-contained article constructs.
	cards := doc.Find("article[itemscope]").Not(adExclusion)

	// Strategy 2: post-card containers, climbed to their structural ancestor.
	if cards.Length() == 0 {
		cards = doc.Find(".post-card").Not(adClassExclusion).
			Closest(`article, .post, .item, [class*="card"], li`).
			Not(adExclusion)
	}

	// Strategy 3: headline-role elements, climbed to their ancestor.
	if cards.Length() == 0 {
		cards = doc.Find(`[itemprop="headline"]`).Not(adClassExclusion).
			Closest(`article, .post-card, .post, .item, [class*="card"], li`).
			Not(adExclusion)
	}

	// Strategy 4: article-path links, climbed to their ancestor.
	if cards.Length() == 0 {
		cards = doc.Find(markerLink).
			Closest(`article, .post-card, .post, .item, [class*="card"], [class*="post-item"], li`).
			Not(adExclusion)
	}

	seen := make(map[*html.Node]bool)
	var unique []*goquery.Selection
	cards.Each(func(_ int, card *goquery.Selection) {
		node := card.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true
		unique = append(unique, card)
	})
	return unique
}

// extractPost runs the per-field fallback cascades over one card. A card
// yielding neither a title nor a link is discarded immediately.
func (e *ListingExtractor) extractPost(card *goquery.Selection, baseURL string, index int) (pagex.Post, bool) {
	title := firstNonEmpty(
		func() string {
			return text(card.Find(`h2.post-card-title, h2[itemprop="headline"], h3[itemprop="headline"]`).First())
		},
		func() string { return text(card.Find(`[itemprop="headline"]`).First()) },
		func() string { return text(card.Find(`h2, h3, .title, [class*="title"]`).First()) },
	)

	link := strings.TrimSpace(e.extractLink(card))
	fullLink := pagex.ResolveURL(link, baseURL)

	if title == "" && fullLink == "" {
		return pagex.Post{}, false
	}

	imageURL := extractCardImage(card)
	if imageURL != "" {
		imageURL = pagex.ResolveURL(imageURL, baseURL)
	}

	author := extractAuthor(card)

	return pagex.Post{
		Index:       index,
		Title:       title,
		ImageURL:    imageURL,
		Link:        fullLink,
		PublishTime: extractPublishTime(card),
		Author:      author,
		Categories:  e.extractCategories(card, fullLink, author),
	}, true
}

// extractLink runs the link cascade: direct child article link, any
// descendant article link, URL-bearing meta tag, anchor inside the title,
// any anchor at all.
func (e *ListingExtractor) extractLink(card *goquery.Selection) string {
	markerLink := fmt.Sprintf(`a[href*=%q]`, e.policy.ArticlePathMarker)

	return firstNonEmpty(
		func() string { return attr(card.ChildrenFiltered(markerLink).First(), "href") },
		func() string { return attr(card.Find(markerLink).First(), "href") },
		func() string {
			return strings.TrimSpace(attr(card.Find(`meta[itemprop="url"], meta[itemprop*="url"]`).First(), "content"))
		},
		func() string {
			return attr(card.Find(`h2 a, h3 a, .post-card-title a, [itemprop="headline"] a`).First(), "href")
		},
		func() string { return attr(card.Find("a[href]").First(), "href") },
	)
}

// extractCardImage runs the image cascade: an inline-script banner call in
// the card's raw markup, then an img element's source attributes in lazy
// priority order, then the same banner call inside onclick handlers.
func extractCardImage(card *goquery.Selection) string {
	return firstNonEmpty(
		func() string {
			cardHTML, err := card.Html()
			if err != nil {
				return ""
			}
			if m := loadBannerRe.FindStringSubmatch(cardHTML); m != nil {
				return m[1]
			}
			return ""
		},
		func() string {
			img := card.Find("img").First()
			if img.Length() == 0 {
				return ""
			}
			for _, name := range lazyImageAttrs {
				if v := attr(img, name); v != "" {
					return v
				}
			}
			return ""
		},
		func() string {
			var found string
			card.Find(`[onclick*="loadBannerDirect"], [onclick*="loadBanner"]`).EachWithBreak(func(_ int, el *goquery.Selection) bool {
				if m := loadBannerRe.FindStringSubmatch(attr(el, "onclick")); m != nil {
					found = m[1]
					return false
				}
				return true
			})
			return found
		},
	)
}

// extractPublishTime returns the first date-labelled element's text, the
// machine-readable datetime attribute, or a CJK date literal found in the
// card's full text.
func extractPublishTime(card *goquery.Selection) string {
	return firstNonEmpty(
		func() string {
			return text(card.Find(`.date, .time, time, [class*="date"], [class*="time"]`).First())
		},
		func() string { return attr(card.Find("time").First(), "datetime") },
		func() string { return cjkDateRe.FindString(card.Text()) },
	)
}

// extractAuthor runs the author cascade: structured metadata paths first,
// then class-named author elements, then a bullet-separator heuristic over
// the card text.
func extractAuthor(card *goquery.Selection) string {
	return firstNonEmpty(
		func() string {
			container := card.Find(`[itemprop="author"]`).First()
			return strings.TrimSpace(attr(container.Find(`meta[itemprop="name"]`).First(), "content"))
		},
		func() string {
			return strings.TrimSpace(attr(card.Find(`[itemprop="author"] meta[itemprop="name"]`).First(), "content"))
		},
		func() string {
			return stripBullets(text(card.Find(`span[itemprop="author"], [itemprop="author"] span`).First()))
		},
		func() string {
			return stripBullets(text(card.Find(`.author, [class*="author"], .by, [class*="by"]`).First()))
		},
		func() string { return authorFromText(card.Text()) },
	)
}

// authorFromText scans card text for a short token followed by a bullet
// separator. The token must contain at least one CJK character and no
// leading digit or date marker, which filters out dates and counters.
func authorFromText(cardText string) string {
	m := bulletLeadRe.FindStringSubmatch(cardText)
	if m == nil {
		return ""
	}
	candidate := strings.TrimSpace(m[1])
	if utf8.RuneCountInString(candidate) < 2 || utf8.RuneCountInString(candidate) >= 20 {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(candidate)
	if unicode.IsDigit(first) {
		return ""
	}
	if strings.ContainsAny(candidate, "年月日") {
		return ""
	}
	if !hanRe.MatchString(candidate) {
		return ""
	}
	return candidate
}

// extractCategories accumulates category values from comma-joined inline
// spans, the category path segment of the post link, and category/tag
// labelled elements. Values are de-duplicated in insertion order.
func (e *ListingExtractor) extractCategories(card *goquery.Selection, link string, author string) []string {
	var set pagex.OrderedSet

	card.Find("span").Each(func(_ int, span *goquery.Selection) {
		categoryText := text(span)
		categoryClass := attr(span, "class")

		if strings.Contains(categoryText, ",") {
			for _, part := range strings.Split(categoryText, ",") {
				part = strings.TrimSpace(part)
				if part == "" || utf8.RuneCountInString(part) >= 30 {
					continue
				}
				if strings.ContainsAny(part, "年月日") || part == author {
					continue
				}
				set.Add(part)
			}
			return
		}

		if categoryText == "" || utf8.RuneCountInString(categoryText) >= 50 {
			return
		}
		if yearLeadRe.MatchString(categoryText) || strings.ContainsAny(categoryText, "年月日") {
			return
		}
		if digitsOnlyRe.MatchString(categoryText) || strings.ContainsAny(categoryText, "•·") {
			return
		}
		for _, marker := range []string{"date", "time", "author"} {
			if strings.Contains(categoryClass, marker) {
				return
			}
		}
		if categoryText == author || e.policy.IsPromoHandle(categoryText) {
			return
		}
		set.Add(stripBullets(categoryText))
	})

	if m := categoryRe.FindStringSubmatch(link); m != nil {
		set.Add(decodeURLSegment(m[1]))
	}

	card.Find(`.category, [class*="category"], .tag, [class*="tag"], a[href*="/category/"]`).Each(func(_ int, el *goquery.Selection) {
		categoryText := text(el)
		if href := attr(el, "href"); strings.Contains(href, "/category/") {
			if m := categoryRe.FindStringSubmatch(href); m != nil {
				categoryText = decodeURLSegment(m[1])
			}
		}
		categoryText = stripBullets(categoryText)
		if categoryText == "" || utf8.RuneCountInString(categoryText) >= 50 {
			return
		}
		if yearLeadRe.MatchString(categoryText) || strings.ContainsAny(categoryText, "年月日") {
			return
		}
		if categoryText == author {
			return
		}
		set.Add(categoryText)
	})

	return set.Values()
}

// loosePass is the fallback cascade when no cards were located: broad
// class-name matches, first-match-only per field, no cross-field
// reinforcement.
func (e *ListingExtractor) loosePass(doc *goquery.Document, baseURL string) []pagex.Post {
	markerLink := fmt.Sprintf(`a[href*=%q]`, e.policy.ArticlePathMarker)

	posts := make([]pagex.Post, 0)
	doc.Find(`.post-card, article, .post, .item, [class*="card"], [class*="post-item"]`).Each(func(i int, card *goquery.Selection) {
		img := card.Find("img").First()
		imageURL := firstNonEmpty(
			func() string { return attr(img, "src") },
			func() string { return attr(img, "data-src") },
			func() string { return attr(img, "data-lazy-src") },
		)
		if imageURL != "" {
			imageURL = pagex.ResolveURL(imageURL, baseURL)
		}

		link := firstNonEmpty(
			func() string { return attr(card.Find(markerLink).First(), "href") },
			func() string { return attr(card.Find("h2 a, h3 a").First(), "href") },
			func() string { return attr(card.Find("a").First(), "href") },
		)
		fullLink := pagex.ResolveURL(link, baseURL)

		title := text(card.Find("h2, h3, .title, a").First())

		publishTime := firstNonEmpty(
			func() string { return text(card.Find(".date, .time, time").First()) },
			func() string { return attr(card.Find("time").First(), "datetime") },
		)

		author := text(card.Find(`.author, [class*="author"]`).First())

		var set pagex.OrderedSet
		card.Find("span").Each(func(_ int, span *goquery.Selection) {
			categoryText := text(span)
			if categoryText == "" || utf8.RuneCountInString(categoryText) >= 50 {
				return
			}
			if yearLeadRe.MatchString(categoryText) || strings.ContainsAny(categoryText, "年月日") {
				return
			}
			if strings.ContainsAny(categoryText, "•·") {
				return
			}
			set.Add(stripBullets(categoryText))
		})

		if title == "" && imageURL == "" && link == "" {
			return
		}
		posts = append(posts, pagex.Post{
			Index:       i + 1,
			Title:       title,
			ImageURL:    imageURL,
			Link:        fullLink,
			PublishTime: publishTime,
			Author:      author,
			Categories:  set.Values(),
		})
	})
	return posts
}

// filterPosts applies the ad and noise policy, then re-indexes survivors
// 1..N in their original relative order.
func (e *ListingExtractor) filterPosts(posts []pagex.Post, baseURL string) []pagex.Post {
	baseHost := ""
	if u, err := url.Parse(baseURL); err == nil {
		baseHost = u.Hostname()
	}

	kept := make([]pagex.Post, 0, len(posts))
	for _, post := range posts {
		if post.Link == "" {
			continue
		}
		if !strings.Contains(post.Link, e.policy.ArticlePathMarker) {
			continue
		}
		if post.Title == "" || post.Title == e.policy.PlaceholderTitle {
			continue
		}
		if utf8.RuneCountInString(post.Title) < e.policy.MinTitleLength {
			continue
		}
		if e.policy.RequireSameHost && baseHost != "" {
			// An unparseable link is kept; only a confirmed host mismatch
			// drops the post.
			if u, err := url.Parse(post.Link); err == nil && u.Hostname() != baseHost {
				continue
			}
		}
		if e.policy.IsAdTitle(post.Title) {
			continue
		}
		kept = append(kept, post)
	}

	for i := range kept {
		kept[i].Index = i + 1
	}
	return kept
}

// stripBullets removes bullet separator characters and trims the result.
func stripBullets(s string) string {
	s = strings.ReplaceAll(s, "•", "")
	s = strings.ReplaceAll(s, "·", "")
	return strings.TrimSpace(s)
}

// decodeURLSegment percent-decodes a path segment, returning the raw value
// when decoding fails.
func decodeURLSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
