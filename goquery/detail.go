package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagexio/pagex"
)

// Ensure DetailExtractor implements pagex.DetailExtractor at compile time.
var _ pagex.DetailExtractor = (*DetailExtractor)(nil)

// playerSelector matches the embedded player containers video URLs are
// harvested from.
const playerSelector = `.dplayer, #dplayer, [class*="dplayer"], [id*="dplayer"]`

// imageMarkerAttr is the data attribute that marks genuine content images
// inside the body region.
const imageMarkerAttr = "data-xkrkllgl"

var (
	dataConfigRe = regexp.MustCompile(`(?is)data-config\s*=\s*['"](.*?)['"]`)

	// Narrower url-field regexes applied when a configuration blob fails to
	// parse as JSON.
	configURLRes = []*regexp.Regexp{
		regexp.MustCompile(`["']url["']\s*:\s*["']([^"']+)["']`),
		regexp.MustCompile(`["']url["']\s*:\s*["']([^"']*(?:\\.[^"']*)*)["']`),
		regexp.MustCompile(`video["']?\s*:\s*\{[^}]*["']url["']\s*:\s*["']([^"']+)["']`),
	}

	m3u8Res = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(https?://[^\s"'<>)]+\.m3u8[^\s"'<>)]*)`),
		regexp.MustCompile(`(?i)(//[^\s"'<>)]+\.m3u8[^\s"'<>)]*)`),
	}

	// Source-code shapes of the player's initialization idiom inside inline
	// scripts.
	scriptVideoRes = []*regexp.Regexp{
		regexp.MustCompile(`video\s*:\s*\{[\s\S]*?url\s*:\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`video\.url\s*=\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`video\s*:\s*\{[\s\S]*?["']url["']\s*:\s*['"]([^'"]+)['"]`),
		regexp.MustCompile(`new\s+DPlayer\s*\([\s\S]*?video\s*:\s*\{[\s\S]*?url\s*:\s*['"]([^'"]+)['"]`),
	}

	playerKeywordRe = regexp.MustCompile(`(?i)dplayer`)
	proximityURLRe  = regexp.MustCompile(`(?i)url\s*[:=]\s*['"]([^'"]+)['"]`)

	entityUnescaper = strings.NewReplacer(
		"&quot;", `"`,
		"&#39;", "'",
		"&#x27;", "'",
		"&amp;", "&",
		`\'`, "'",
		`\"`, `"`,
	)
)

// proximityWindow bounds the raw-text distance between a player keyword and
// a url field in the last-resort scan.
const proximityWindow = 2000

// playerConfig models the structured configuration attribute carried by
// player containers.
type playerConfig struct {
	Video struct {
		URL string `json:"url"`
	} `json:"video"`
}

// DetailExtractor harvests embedded video stream URLs from multiple
// encodings and extracts the ordered body content region of an article
// detail page.
type DetailExtractor struct{}

// NewDetailExtractor creates a DetailExtractor.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{}
}

// ExtractDetail parses html and returns the harvested video URLs, the
// ordered content items, and the de-duplicated image set.
func (e *DetailExtractor) ExtractDetail(rawHTML string, baseURL string) (*pagex.Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagex.Errorf(pagex.EINTERNAL, "failed to parse HTML: %v", err)
	}

	detail := &pagex.Detail{
		URL:       baseURL,
		VideoURLs: []string{},
		Content:   []pagex.ContentItem{},
		Images:    []string{},
	}

	var videos pagex.OrderedSet
	harvestPlayerContainers(doc, baseURL, &videos)
	harvestConfigBlobs(rawHTML, baseURL, &videos)
	harvestManifestURLs(rawHTML, baseURL, &videos)
	harvestScriptBlocks(doc, baseURL, &videos)
	harvestProximity(rawHTML, baseURL, &videos)
	detail.VideoURLs = videos.Values()

	var images pagex.OrderedSet
	detail.Content = extractContentRegion(doc, baseURL, &images)
	detail.Images = images.Values()

	return detail, nil
}

// addVideoURL resolves a candidate and accepts it only if the result is an
// absolute, protocol-relative, or root-relative URL. Protocol-relative
// forms are completed with the base's scheme so the set only holds full
// URLs.
func addVideoURL(set *pagex.OrderedSet, candidate, baseURL string) {
	resolved := pagex.ResolveURL(candidate, baseURL)
	if resolved == "" {
		return
	}
	if !strings.HasPrefix(resolved, "http") && !strings.HasPrefix(resolved, "//") && !strings.HasPrefix(resolved, "/") {
		return
	}
	if strings.HasPrefix(resolved, "//") {
		resolved = pagex.ResolveURL(resolved, baseURL)
	}
	set.Add(resolved)
}

// harvestPlayerContainers reads every player container's structured
// configuration attribute, then its alternate single data attributes,
// falling back to treating the attribute value as a literal URL.
func harvestPlayerContainers(doc *goquery.Document, baseURL string, set *pagex.OrderedSet) {
	doc.Find(playerSelector).Each(func(_ int, player *goquery.Selection) {
		if raw := attr(player, "data-config"); raw != "" {
			var cfg playerConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil && cfg.Video.URL != "" {
				addVideoURL(set, cfg.Video.URL, baseURL)
			}
		}

		raw := firstNonEmpty(
			func() string { return attr(player, "data-video") },
			func() string { return attr(player, "data-url") },
			func() string { return attr(player, "data-src") },
		)
		if raw == "" {
			return
		}
		var cfg struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(raw), &cfg); err == nil && cfg.URL != "" {
			addVideoURL(set, cfg.URL, baseURL)
			return
		}
		addVideoURL(set, raw, baseURL)
	})
}

// harvestConfigBlobs scans the raw markup for configuration attribute
// blocks, unescapes entities, and parses each as embedded data, falling
// back to narrower url-field regexes when parsing fails.
func harvestConfigBlobs(rawHTML, baseURL string, set *pagex.OrderedSet) {
	for _, m := range dataConfigRe.FindAllStringSubmatch(rawHTML, -1) {
		blob := entityUnescaper.Replace(m[1])

		var cfg playerConfig
		if err := json.Unmarshal([]byte(blob), &cfg); err == nil && cfg.Video.URL != "" {
			addVideoURL(set, cfg.Video.URL, baseURL)
			continue
		}

		for _, re := range configURLRes {
			if um := re.FindStringSubmatch(m[1]); um != nil {
				candidate := strings.NewReplacer(`\'`, "'", `\"`, `"`).Replace(um[1])
				addVideoURL(set, candidate, baseURL)
				break
			}
		}
	}
}

// harvestManifestURLs scans the raw markup for literal stream-manifest
// URLs, absolute or protocol-relative.
func harvestManifestURLs(rawHTML, baseURL string, set *pagex.OrderedSet) {
	for _, re := range m3u8Res {
		for _, m := range re.FindAllStringSubmatch(rawHTML, -1) {
			addVideoURL(set, m[1], baseURL)
		}
	}
}

// harvestScriptBlocks scans every inline script block for the player's
// initialization idiom.
func harvestScriptBlocks(doc *goquery.Document, baseURL string, set *pagex.OrderedSet) {
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		content := script.Text()
		if content == "" {
			return
		}
		for _, re := range scriptVideoRes {
			for _, m := range re.FindAllStringSubmatch(content, -1) {
				addVideoURL(set, strings.TrimSpace(m[1]), baseURL)
			}
		}
	})
}

// harvestProximity is the last-resort catch-all: for every player keyword
// occurrence, search the following bounded window of raw markup for a url
// field. The scan is windowed manually because the repetition bound
// exceeds what the regexp engine allows in a counted repeat.
func harvestProximity(rawHTML, baseURL string, set *pagex.OrderedSet) {
	for _, loc := range playerKeywordRe.FindAllStringIndex(rawHTML, -1) {
		end := loc[1] + proximityWindow
		if end > len(rawHTML) {
			end = len(rawHTML)
		}
		if m := proximityURLRe.FindStringSubmatch(rawHTML[loc[1]:end]); m != nil {
			addVideoURL(set, strings.TrimSpace(m[1]), baseURL)
		}
	}
}

// extractContentRegion locates the primary content container, bounds the
// harvest span between the marker quote and the player container, and
// walks the span in document order emitting interleaved text and image
// items. Image URLs are also accumulated into the images set.
func extractContentRegion(doc *goquery.Document, baseURL string, images *pagex.OrderedSet) []pagex.ContentItem {
	content := make([]pagex.ContentItem, 0)

	container := doc.Find(`.post-content, [class*="post-content"], article, [class*="content"]`).First()
	if container.Length() == 0 {
		return content
	}

	quote := container.Find("blockquote").First()
	player := container.Find(playerSelector).First()

	var span *goquery.Selection
	switch {
	case quote.Length() > 0 && player.Length() > 0:
		span = quote.NextUntilSelection(player)
	case quote.Length() > 0:
		span = quote.NextAll()
	case player.Length() > 0:
		span = childrenBefore(container, player)
	default:
		span = container.Children()
	}

	span.Each(func(_ int, el *goquery.Selection) {
		emitContent(el, baseURL, &content, images)
	})
	return content
}

// childrenBefore returns the container's children that precede the child
// holding the stop element, excluding it.
func childrenBefore(container, stop *goquery.Selection) *goquery.Selection {
	children := container.Children()
	stopNode := stop.Get(0)

	cut := -1
	children.EachWithBreak(func(i int, child *goquery.Selection) bool {
		if child.IsNodes(stopNode) || child.Find(playerSelector).IsNodes(stopNode) {
			cut = i
			return false
		}
		return true
	})
	if cut < 0 {
		return children
	}
	return children.Slice(0, cut)
}

// emitContent appends the element's text paragraphs and marked images in
// document order. The element itself may be a paragraph or image; otherwise
// its matching descendants are walked.
func emitContent(el *goquery.Selection, baseURL string, content *[]pagex.ContentItem, images *pagex.OrderedSet) {
	if el.Is("p") {
		if t := text(el); t != "" {
			*content = append(*content, pagex.ContentItem{Type: pagex.ContentText, Text: t})
		}
		// Marked images nested inside the paragraph still count.
		el.Find("img[" + imageMarkerAttr + "]").Each(func(_ int, img *goquery.Selection) {
			emitImage(img, baseURL, content, images)
		})
		return
	}
	if el.Is("img[" + imageMarkerAttr + "]") {
		emitImage(el, baseURL, content, images)
		return
	}

	el.Find(`p, img[` + imageMarkerAttr + `]`).Each(func(_ int, node *goquery.Selection) {
		if node.Is("p") {
			if t := text(node); t != "" {
				*content = append(*content, pagex.ContentItem{Type: pagex.ContentText, Text: t})
			}
			return
		}
		emitImage(node, baseURL, content, images)
	})
}

func emitImage(img *goquery.Selection, baseURL string, content *[]pagex.ContentItem, images *pagex.OrderedSet) {
	raw := attr(img, imageMarkerAttr)
	if raw == "" {
		return
	}
	resolved := pagex.ResolveURL(raw, baseURL)
	images.Add(resolved)
	*content = append(*content, pagex.ContentItem{Type: pagex.ContentImage, URL: resolved})
}
