package pagex

// ListingExtractor locates repeating article cards in a listing page and
// returns the extracted posts plus pagination metadata.
//
// Absence of matches is a valid outcome: a page with no recognizable cards
// yields an empty Posts slice and a nil Pagination, not an error.
type ListingExtractor interface {
	// ExtractListing parses html and extracts posts and pagination.
	// The baseURL is the page's own URL, used to resolve relative links.
	ExtractListing(html string, baseURL string) (*Listing, error)
}

// DetailExtractor harvests embedded video stream URLs and the ordered body
// content region from an article detail page.
type DetailExtractor interface {
	ExtractDetail(html string, baseURL string) (*Detail, error)
}

// CategoryExtractor extracts a page's flat category navigation list.
type CategoryExtractor interface {
	ExtractCategories(html string, baseURL string) ([]Category, error)
}
