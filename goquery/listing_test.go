package goquery_test

import (
	"testing"

	"github.com/pagexio/pagex"
	pagexquery "github.com/pagexio/pagex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingBase = "https://example.com/page/2/"

func newListingExtractor() *pagexquery.ListingExtractor {
	return pagexquery.NewListingExtractor(pagex.DefaultPolicy())
}

func TestListingExtractor_ExtractListing(t *testing.T) {
	t.Parallel()

	t.Run("extracts posts from article cards", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2 class="post-card-title">独家爆料完整标题</h2>
				<a href="/archives/123/">阅读全文</a>
				<img src="/img/cover.jpg">
				<span class="date">2024年1月2日</span>
				<span itemprop="author">瓜姐姐本人•</span>
				<span>吃瓜,爆料</span>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)

		post := listing.Posts[0]
		assert.Equal(t, 1, post.Index)
		assert.Equal(t, "独家爆料完整标题", post.Title)
		assert.Equal(t, "https://example.com/archives/123/", post.Link)
		assert.Equal(t, "https://example.com/img/cover.jpg", post.ImageURL)
		assert.Equal(t, "2024年1月2日", post.PublishTime)
		assert.Equal(t, "瓜姐姐本人", post.Author)
		assert.Equal(t, []string{"吃瓜", "爆料"}, post.Categories)
	})

	t.Run("no recognizable cards yields empty posts and nil pagination", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div>nothing to see</div></body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
		assert.Nil(t, listing.Pagination)
	})

	t.Run("climbs from article-path links when no card markup exists", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><ul>
			<li><h3>这是一个很长的标题</h3><a href="/archives/77/">打开</a></li>
		</ul></body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "这是一个很长的标题", listing.Posts[0].Title)
		assert.Equal(t, "https://example.com/archives/77/", listing.Posts[0].Link)
	})

	t.Run("excludes ad-classed cards at location time", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope class="ad-banner">
				<h2>推广位正经标题</h2>
				<a href="/archives/1/">x</a>
			</article>
			<article itemscope>
				<h2>真实文章完整标题</h2>
				<a href="/archives/2/">x</a>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "真实文章完整标题", listing.Posts[0].Title)
	})

	t.Run("filters short titles even with valid link and image", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>AB</h2>
				<a href="/archives/5/">x</a>
				<img src="/img/ok.jpg">
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
	})

	t.Run("filters titles containing blocked ad keywords", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>Exclusive sponsor content here</h2>
				<a href="/archives/6/">x</a>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
	})

	t.Run("filters links without the article path marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>导航页完整标题文字</h2>
				<a href="/category/nav/">x</a>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
	})

	t.Run("filters links pointing at a different hostname", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>外站文章完整标题</h2>
				<a href="https://other.example.net/archives/9/">x</a>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		assert.Empty(t, listing.Posts)
	})

	t.Run("re-indexes survivors contiguously after filtering", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope><h2>第一篇幸存文章标题</h2><a href="/archives/1/">x</a></article>
			<article itemscope><h2>AB</h2><a href="/archives/2/">x</a></article>
			<article itemscope><h2>第二篇幸存文章标题</h2><a href="/archives/3/">x</a></article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 2)
		for i, post := range listing.Posts {
			assert.Equal(t, i+1, post.Index)
		}
		assert.Equal(t, "https://example.com/archives/1/", listing.Posts[0].Link)
		assert.Equal(t, "https://example.com/archives/3/", listing.Posts[1].Link)
	})

	t.Run("categories are de-duplicated across sources", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>完整标题五个字也行</h2>
				<a href="/archives/12/">x</a>
				<span>吃瓜,热点</span>
				<a class="category" href="/category/%E5%90%83%E7%93%9C/">吃瓜</a>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)

		categories := listing.Posts[0].Categories
		seen := make(map[string]int)
		for _, c := range categories {
			seen[c]++
		}
		for c, n := range seen {
			assert.Equal(t, 1, n, "category %q appears %d times", c, n)
		}
		assert.Contains(t, categories, "吃瓜")
		assert.Contains(t, categories, "热点")
	})

	t.Run("image falls back to lazy-load attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>懒加载图片文章标题</h2>
				<a href="/archives/30/">x</a>
				<img data-lazy-src="/lazy/cover.jpg">
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "https://example.com/lazy/cover.jpg", listing.Posts[0].ImageURL)
	})

	t.Run("image extracted from inline banner call", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>横幅脚本图片文章标题</h2>
				<a href="/archives/31/">x</a>
				<script>loadBannerDirect('https://img.example.com/b.webp', 1)</script>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "https://img.example.com/b.webp", listing.Posts[0].ImageURL)
	})

	t.Run("publish time falls back to date literal in card text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>日期正则兜底文章标题</h2>
				<a href="/archives/32/">x</a>
				<div>发布于 2023年12月31日 点击量 500</div>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "2023年12月31日", listing.Posts[0].PublishTime)
	})

	t.Run("author prefers structured metadata", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>结构化作者的文章标题</h2>
				<a href="/archives/33/">x</a>
				<div itemprop="author"><meta itemprop="name" content="爆料人甲"></div>
				<span class="author">不该选我</span>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "爆料人甲", listing.Posts[0].Author)
	})

	t.Run("author heuristic requires CJK and rejects dates", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<article itemscope>
				<h2>圆点启发作者文章标题</h2>
				<a href="/archives/34/">x</a>
				<div>爆料人乙 • 2024年1月2日</div>
			</article>
		</body></html>`

		listing, err := newListingExtractor().ExtractListing(html, listingBase)
		require.NoError(t, err)
		require.Len(t, listing.Posts, 1)
		assert.Equal(t, "爆料人乙", listing.Posts[0].Author)
	})
}
