package pagex

// Content item kinds for Detail.Content.
const (
	ContentText  = "text"
	ContentImage = "image"
)

// ContentItem is a tagged variant: either a text paragraph or an image.
// Items preserve source document order, interleaved as they appear on the
// page.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Detail is the result of extracting an article detail page.
// VideoURLs is de-duplicated and insertion-ordered across all harvesting
// passes; Images equals the de-duplicated set of URLs from image items in
// Content.
type Detail struct {
	URL       string        `json:"url"`
	VideoURLs []string      `json:"videoUrls"`
	Content   []ContentItem `json:"content"`
	Images    []string      `json:"images"`
}
