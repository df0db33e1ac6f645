package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagexio/pagex"
)

// Ensure CategoryExtractor implements pagex.CategoryExtractor at compile time.
var _ pagex.CategoryExtractor = (*CategoryExtractor)(nil)

// CategoryExtractor extracts a page's flat category navigation list with an
// active-item flag.
type CategoryExtractor struct{}

// NewCategoryExtractor creates a CategoryExtractor.
func NewCategoryExtractor() *CategoryExtractor {
	return &CategoryExtractor{}
}

// ExtractCategories reads the designated list container, falling back to a
// scan of any list-like container with de-duplication by resolved URL
// (first occurrence wins, including its active flag).
func (e *CategoryExtractor) ExtractCategories(rawHTML string, baseURL string) ([]pagex.Category, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagex.Errorf(pagex.EINTERNAL, "failed to parse HTML: %v", err)
	}

	categories := make([]pagex.Category, 0)

	list := doc.Find("ul.list")
	if list.Length() > 0 {
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			link := li.Find("a").First()
			if link.Length() == 0 {
				return
			}
			title := text(link)
			href := attr(link, "href")
			if title == "" || href == "" {
				return
			}
			categories = append(categories, pagex.Category{
				Title:  title,
				URL:    pagex.ResolveURL(href, baseURL),
				Active: li.HasClass("active"),
			})
		})
		return categories, nil
	}

	seen := make(map[string]bool)
	doc.Find(`ul[class*="list"], .list ul, nav ul, .nav ul`).Each(func(_ int, ul *goquery.Selection) {
		ul.Find("li a").Each(func(_ int, link *goquery.Selection) {
			title := text(link)
			href := attr(link, "href")
			if title == "" || href == "" {
				return
			}
			fullURL := pagex.ResolveURL(href, baseURL)
			if seen[fullURL] {
				return
			}
			seen[fullURL] = true
			categories = append(categories, pagex.Category{
				Title:  title,
				URL:    fullURL,
				Active: link.Closest("li").HasClass("active"),
			})
		})
	})
	return categories, nil
}
