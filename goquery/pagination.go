package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagexio/pagex"
)

var (
	pageInfoRe  = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	pageTotalRe = regexp.MustCompile(`/(\d+)`)
	// Localized and English prev/next labels excluded from numbered page links.
	pageNavWordRe = regexp.MustCompile(`(?i)跳转|上一页|下一页|Previous|Next`)
)

// extractPagination locates a page navigator and extracts its metadata.
// The primary ".page-nav" structure is preferred; a generic pagination
// container is the fallback. Returns nil when neither exists.
func extractPagination(doc *goquery.Document, baseURL string) *pagex.Pagination {
	if nav := doc.Find(".page-nav"); nav.Length() > 0 {
		return navigatorPagination(nav, baseURL)
	}
	if nav := doc.Find(`.pagination, .pager, [class*="page"]`); nav.Length() > 0 {
		return genericPagination(nav, baseURL)
	}
	return nil
}

// navigatorPagination parses the primary page navigator: a combined
// "current/total" label when present, active-state markers otherwise, the
// numbered page links, and prev/next links by class or by image alt text.
func navigatorPagination(nav *goquery.Selection, baseURL string) *pagex.Pagination {
	var currentPage, totalPages string

	if m := pageInfoRe.FindStringSubmatch(text(nav.Find(".page-info").First())); m != nil {
		currentPage, totalPages = m[1], m[2]
	}

	if currentPage == "" {
		currentPage = firstNonEmpty(
			func() string { return text(nav.Find(`.current, .active, [class*="current"]`)) },
			func() string { return text(nav.Find("a.active, li.active a")) },
			func() string { return text(nav.Find("li.active")) },
			func() string { return "1" },
		)
	}

	if totalPages == "" {
		totalPages = firstNonEmpty(
			func() string { return text(nav.Find(`.total, [class*="total"]`)) },
			func() string {
				if m := pageTotalRe.FindStringSubmatch(nav.Text()); m != nil {
					return m[1]
				}
				return ""
			},
		)
	}

	pageLinks := make([]pagex.PageLink, 0)
	nav.Find(".page-navigator a, ul a, .pagination a").Each(func(_ int, link *goquery.Selection) {
		href := attr(link, "href")
		label := text(link)
		if href == "" || label == "" {
			return
		}
		parent := link.Parent()
		if parent.HasClass("prev") || parent.HasClass("next") {
			return
		}
		if pageNavWordRe.MatchString(label) {
			return
		}
		if link.Find(`img[alt*="上一页"], img[alt*="下一页"], img[alt*="prev"], img[alt*="next"]`).Length() > 0 {
			return
		}
		pageLinks = append(pageLinks, pagex.PageLink{
			Page: label,
			URL:  pagex.ResolveURL(href, baseURL),
		})
	})

	prevPage := siblingPageLink(nav,
		`li.prev a, .prev a, [class*="prev"] a`,
		`a img[alt*="上一页"], a img[alt*="prev"], a img[alt*="Previous"]`,
		baseURL)
	nextPage := siblingPageLink(nav,
		`li.next a, .next a, [class*="next"] a`,
		`a img[alt*="下一页"], a img[alt*="next"], a img[alt*="Next"]`,
		baseURL)

	return &pagex.Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageLinks:   pageLinks,
		PrevPage:    prevPage,
		NextPage:    nextPage,
	}
}

// genericPagination parses a generic pagination container with the looser
// rule set: no combined label, no image-alt fallbacks.
func genericPagination(nav *goquery.Selection, baseURL string) *pagex.Pagination {
	currentPage := text(nav.Find(".current, .active"))
	if currentPage == "" {
		currentPage = "1"
	}

	totalPages := ""
	if m := pageTotalRe.FindStringSubmatch(nav.Text()); m != nil {
		totalPages = m[1]
	}

	pageLinks := make([]pagex.PageLink, 0)
	nav.Find("a").Each(func(_ int, link *goquery.Selection) {
		href := attr(link, "href")
		label := text(link)
		if href == "" || label == "" {
			return
		}
		parent := link.Parent()
		if parent.HasClass("prev") || parent.HasClass("next") {
			return
		}
		if pageNavWordRe.MatchString(label) {
			return
		}
		pageLinks = append(pageLinks, pagex.PageLink{
			Page: label,
			URL:  pagex.ResolveURL(href, baseURL),
		})
	})

	prevPage := siblingPageLink(nav, `li.prev a, .prev a, [class*="prev"] a`, "", baseURL)
	nextPage := siblingPageLink(nav, `li.next a, .next a, [class*="next"] a`, "", baseURL)

	return &pagex.Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageLinks:   pageLinks,
		PrevPage:    prevPage,
		NextPage:    nextPage,
	}
}

// siblingPageLink locates a prev/next link by class selector, falling back
// to anchors containing an image whose alt text signals the direction.
// Returns nil when no such link exists.
func siblingPageLink(nav *goquery.Selection, classSelector, altSelector, baseURL string) *string {
	if href := attr(nav.Find(classSelector).First(), "href"); href != "" {
		resolved := pagex.ResolveURL(href, baseURL)
		return &resolved
	}

	if altSelector == "" {
		return nil
	}

	var found *string
	nav.Find(altSelector).EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if href := attr(img.Closest("a"), "href"); href != "" {
			resolved := pagex.ResolveURL(href, baseURL)
			found = &resolved
			return false
		}
		return true
	})
	return found
}
