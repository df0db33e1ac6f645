package goquery_test

import (
	"testing"

	"github.com/pagexio/pagex"
	pagexquery "github.com/pagexio/pagex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailBase = "https://example.com/archives/123/"

func extractDetail(t *testing.T, html string) *pagex.Detail {
	t.Helper()
	detail, err := pagexquery.NewDetailExtractor().ExtractDetail(html, detailBase)
	require.NoError(t, err)
	return detail
}

func TestDetailExtractor_VideoURLs(t *testing.T) {
	t.Parallel()

	t.Run("same stream found by several passes appears once", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="dplayer" data-config='{"video":{"url":"https://cdn.example.com/stream.m3u8"}}'></div>
			<script>
				var dp = new DPlayer({ container: el, video: { url: 'https://cdn.example.com/stream.m3u8' } });
			</script>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Equal(t, []string{"https://cdn.example.com/stream.m3u8"}, detail.VideoURLs)
	})

	t.Run("container data attribute parsed as embedded data or literal", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div id="dplayer" data-video='{"url":"https://cdn.example.com/a.mp4"}'></div>
			<div class="dplayer-alt" data-url="//cdn2.example.com/b.m3u8"></div>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Equal(t, []string{
			"https://cdn.example.com/a.mp4",
			"https://cdn2.example.com/b.m3u8",
		}, detail.VideoURLs)
	})

	t.Run("entity-escaped config blob recovered by raw scan", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div data-config='{&quot;video&quot;:{&quot;url&quot;:&quot;https://cdn.example.com/esc.m3u8&quot;}}'></div>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Contains(t, detail.VideoURLs, "https://cdn.example.com/esc.m3u8")
	})

	t.Run("literal manifest URLs harvested from raw markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<p>backup: https://mirror.example.com/vod/777.m3u8?sig=abc</p>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Contains(t, detail.VideoURLs, "https://mirror.example.com/vod/777.m3u8?sig=abc")
	})

	t.Run("relative candidates resolve to absolute URLs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="dplayer" data-src="/streams/55.m3u8"></div>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Contains(t, detail.VideoURLs, "https://example.com/streams/55.m3u8")
	})

	t.Run("player keyword proximity scan is the last resort", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<script>
				setupDPlayer(el, cfg); cfg.url = "https://cdn.example.com/prox.mp4";
			</script>
		</body></html>`

		detail := extractDetail(t, html)
		assert.Contains(t, detail.VideoURLs, "https://cdn.example.com/prox.mp4")
	})

	t.Run("page without players yields empty slice", func(t *testing.T) {
		t.Parallel()

		detail := extractDetail(t, `<html><body><p>纯文字页面</p></body></html>`)
		assert.NotNil(t, detail.VideoURLs)
		assert.Empty(t, detail.VideoURLs)
	})
}

func TestDetailExtractor_Content(t *testing.T) {
	t.Parallel()

	t.Run("span between quote marker and player, interleaved in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="post-content">
				<blockquote>简介</blockquote>
				<p>第一段文案</p>
				<img data-xkrkllgl="/images/one.jpg">
				<p>第二段文案</p>
				<div class="dplayer"></div>
				<p>播放器后的内容不收</p>
			</div>
		</body></html>`

		detail := extractDetail(t, html)

		require.Len(t, detail.Content, 3)
		assert.Equal(t, pagex.ContentItem{Type: pagex.ContentText, Text: "第一段文案"}, detail.Content[0])
		assert.Equal(t, pagex.ContentItem{Type: pagex.ContentImage, URL: "https://example.com/images/one.jpg"}, detail.Content[1])
		assert.Equal(t, pagex.ContentItem{Type: pagex.ContentText, Text: "第二段文案"}, detail.Content[2])

		assert.Equal(t, []string{"https://example.com/images/one.jpg"}, detail.Images)
	})

	t.Run("without quote marker the span runs up to the player", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="post-content">
				<p>前面的内容</p>
				<div class="dplayer"></div>
				<p>后面的内容</p>
			</div>
		</body></html>`

		detail := extractDetail(t, html)
		require.Len(t, detail.Content, 1)
		assert.Equal(t, "前面的内容", detail.Content[0].Text)
	})

	t.Run("without markers the whole container is walked", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="post-content">
				<div>
					<p>嵌套第一段</p>
					<img data-xkrkllgl="/images/two.jpg">
				</div>
				<p>顶层第二段</p>
			</div>
		</body></html>`

		detail := extractDetail(t, html)
		require.Len(t, detail.Content, 3)
		assert.Equal(t, "嵌套第一段", detail.Content[0].Text)
		assert.Equal(t, "https://example.com/images/two.jpg", detail.Content[1].URL)
		assert.Equal(t, "顶层第二段", detail.Content[2].Text)
	})

	t.Run("unmarked images are ignored", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="post-content">
				<p>只有文字</p>
				<img src="/images/plain.jpg">
			</div>
		</body></html>`

		detail := extractDetail(t, html)
		require.Len(t, detail.Content, 1)
		assert.Empty(t, detail.Images)
	})

	t.Run("repeated image URL deduplicated in images but kept in content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div class="post-content">
				<blockquote>简介</blockquote>
				<img data-xkrkllgl="/images/dup.jpg">
				<p>中间文字</p>
				<img data-xkrkllgl="/images/dup.jpg">
			</div>
		</body></html>`

		detail := extractDetail(t, html)
		require.Len(t, detail.Content, 3)
		assert.Equal(t, []string{"https://example.com/images/dup.jpg"}, detail.Images)
	})
}
