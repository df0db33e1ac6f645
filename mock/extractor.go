package mock

import "github.com/pagexio/pagex"

var _ pagex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of pagex.ListingExtractor.
type ListingExtractor struct {
	ExtractListingFn func(html string, baseURL string) (*pagex.Listing, error)
}

func (e *ListingExtractor) ExtractListing(html string, baseURL string) (*pagex.Listing, error) {
	return e.ExtractListingFn(html, baseURL)
}

var _ pagex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of pagex.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailFn func(html string, baseURL string) (*pagex.Detail, error)
}

func (e *DetailExtractor) ExtractDetail(html string, baseURL string) (*pagex.Detail, error) {
	return e.ExtractDetailFn(html, baseURL)
}

var _ pagex.CategoryExtractor = (*CategoryExtractor)(nil)

// CategoryExtractor is a mock implementation of pagex.CategoryExtractor.
type CategoryExtractor struct {
	ExtractCategoriesFn func(html string, baseURL string) ([]pagex.Category, error)
}

func (e *CategoryExtractor) ExtractCategories(html string, baseURL string) ([]pagex.Category, error) {
	return e.ExtractCategoriesFn(html, baseURL)
}
