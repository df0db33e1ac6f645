package pagex

// Post represents one article entry extracted from a listing page.
// Index is 1-based and reassigned after noise filtering, so surviving
// posts always carry a contiguous 1..N sequence in slice order.
type Post struct {
	Index       int      `json:"index"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl"`
	Link        string   `json:"link"`
	PublishTime string   `json:"publishTime"`
	Author      string   `json:"author"`
	Categories  []string `json:"categories"`
}

// PageLink is one numbered entry in a page navigator.
type PageLink struct {
	Page string `json:"page"`
	URL  string `json:"url"`
}

// Pagination describes the page navigator found on a listing page.
// PrevPage and NextPage are nil when the navigator has no such link.
type Pagination struct {
	CurrentPage string     `json:"currentPage"`
	TotalPages  string     `json:"totalPages"`
	PageLinks   []PageLink `json:"pageLinks"`
	PrevPage    *string    `json:"prevPage"`
	NextPage    *string    `json:"nextPage"`
}

// Listing is the result of extracting a listing page.
// Pagination is nil when no navigator structure was found; an empty Posts
// slice is a valid result, not an error.
type Listing struct {
	Posts      []Post      `json:"posts"`
	Pagination *Pagination `json:"pagination"`
}
