package pagex

// Category is one entry in a page's category navigation list.
type Category struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}
