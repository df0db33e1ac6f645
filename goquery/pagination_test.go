package goquery_test

import (
	"testing"

	"github.com/pagexio/pagex"
	pagexquery "github.com/pagexio/pagex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractListing(t *testing.T, html string) *pagex.Listing {
	t.Helper()
	listing, err := pagexquery.NewListingExtractor(pagex.DefaultPolicy()).ExtractListing(html, listingBase)
	require.NoError(t, err)
	return listing
}

func TestListingExtractor_Pagination(t *testing.T) {
	t.Parallel()

	t.Run("parses the primary page navigator", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="page-nav">
				<span class="page-info">2/10</span>
				<ul>
					<li class="prev"><a href="/page/1/">上一页</a></li>
					<li><a href="/page/1/">1</a></li>
					<li class="current">2</li>
					<li><a href="/page/3/">3</a></li>
					<li class="next"><a href="/page/3/">下一页</a></li>
				</ul>
			</div>
		</body></html>`

		listing := extractListing(t, html)
		p := listing.Pagination
		require.NotNil(t, p)

		assert.Equal(t, "2", p.CurrentPage)
		assert.Equal(t, "10", p.TotalPages)
		require.Len(t, p.PageLinks, 2)
		assert.Equal(t, pagex.PageLink{Page: "1", URL: "https://example.com/page/1/"}, p.PageLinks[0])
		assert.Equal(t, pagex.PageLink{Page: "3", URL: "https://example.com/page/3/"}, p.PageLinks[1])

		require.NotNil(t, p.PrevPage)
		assert.Equal(t, "https://example.com/page/1/", *p.PrevPage)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, "https://example.com/page/3/", *p.NextPage)
	})

	t.Run("falls back to active markers without a combined label", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="page-nav">
				<ul>
					<li class="active"><a href="/page/1/">1</a></li>
					<li><a href="/page/2/">2</a></li>
				</ul>
			</div>
		</body></html>`

		listing := extractListing(t, html)
		p := listing.Pagination
		require.NotNil(t, p)
		assert.Equal(t, "1", p.CurrentPage)
	})

	t.Run("finds prev and next by image alt text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="page-nav">
				<ul>
					<li><a href="/page/1/"><img alt="上一页箭头"></a></li>
					<li><a href="/page/2/">2</a></li>
					<li><a href="/page/3/"><img alt="下一页箭头"></a></li>
				</ul>
			</div>
		</body></html>`

		listing := extractListing(t, html)
		p := listing.Pagination
		require.NotNil(t, p)

		// Arrow links carry no usable page number.
		require.Len(t, p.PageLinks, 1)
		assert.Equal(t, "2", p.PageLinks[0].Page)

		require.NotNil(t, p.PrevPage)
		assert.Equal(t, "https://example.com/page/1/", *p.PrevPage)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, "https://example.com/page/3/", *p.NextPage)
	})

	t.Run("uses the generic container when no primary navigator exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="pagination">
				<a class="current" href="/page/4/">4</a>
				<a href="/page/5/">5</a>
				<span>4/9</span>
			</div>
		</body></html>`

		listing := extractListing(t, html)
		p := listing.Pagination
		require.NotNil(t, p)
		assert.Equal(t, "4", p.CurrentPage)
		assert.Equal(t, "9", p.TotalPages)
		assert.Nil(t, p.PrevPage)
		assert.Nil(t, p.NextPage)
	})

	t.Run("missing navigator yields nil pagination", func(t *testing.T) {
		t.Parallel()

		listing := extractListing(t, `<html><body><p>no nav</p></body></html>`)
		assert.Nil(t, listing.Pagination)
	})
}
