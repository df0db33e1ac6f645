package gin

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pagexio/pagex"
)

// response is the JSON envelope shared by every endpoint.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// listingData is the success payload of the listing endpoint.
type listingData struct {
	URL        string            `json:"url"`
	Posts      []pagex.Post      `json:"posts"`
	Pagination *pagex.Pagination `json:"pagination"`
	TotalPosts int               `json:"totalPosts"`
}

// categoriesData is the success payload of the categories endpoint.
type categoriesData struct {
	URL        string           `json:"url"`
	Categories []pagex.Category `json:"categories"`
	Total      int              `json:"total"`
}

// Handler serves the extraction endpoints by composing a fetcher with the
// three extraction pipelines.
type Handler struct {
	fetcher    pagex.Fetcher
	listings   pagex.ListingExtractor
	details    pagex.DetailExtractor
	categories pagex.CategoryExtractor
	logger     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(fetcher pagex.Fetcher, listings pagex.ListingExtractor,
	details pagex.DetailExtractor, categories pagex.CategoryExtractor,
	logger *slog.Logger) *Handler {
	return &Handler{
		fetcher:    fetcher,
		listings:   listings,
		details:    details,
		categories: categories,
		logger:     logger,
	}
}

// ParseListing handles GET /api/parse.
func (h *Handler) ParseListing(c *gin.Context) {
	pageURL, ok := h.pageURL(c)
	if !ok {
		return
	}

	html, err := h.fetcher.Fetch(c.Request.Context(), pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	listing, err := h.listings.ExtractListing(html, pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Data: listingData{
		URL:        pageURL,
		Posts:      listing.Posts,
		Pagination: listing.Pagination,
		TotalPosts: len(listing.Posts),
	}})
}

// ParseDetail handles GET /api/parse/detail.
func (h *Handler) ParseDetail(c *gin.Context) {
	pageURL, ok := h.pageURL(c)
	if !ok {
		return
	}

	html, err := h.fetcher.Fetch(c.Request.Context(), pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	detail, err := h.details.ExtractDetail(html, pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Data: detail})
}

// ParseCategories handles GET /api/parse/categories.
func (h *Handler) ParseCategories(c *gin.Context) {
	pageURL, ok := h.pageURL(c)
	if !ok {
		return
	}

	html, err := h.fetcher.Fetch(c.Request.Context(), pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	categories, err := h.categories.ExtractCategories(html, pageURL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response{Success: true, Data: categoriesData{
		URL:        pageURL,
		Categories: categories,
		Total:      len(categories),
	}})
}

// pageURL validates the required url query parameter. On failure it writes
// the 400 envelope and reports false.
func (h *Handler) pageURL(c *gin.Context) (string, bool) {
	raw := c.Query("url")
	if raw == "" {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "URL parameter is required"})
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.JSON(http.StatusBadRequest, response{Success: false, Error: "Invalid URL format"})
		return "", false
	}
	return raw, true
}

// fail maps a domain error to the HTTP envelope: client-fault input errors
// get 400, everything else 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if pagex.ErrorCode(err) == pagex.EINVALID {
		status = http.StatusBadRequest
	}
	h.logger.Error("parse failed",
		"path", c.FullPath(),
		"url", c.Query("url"),
		"error", err,
	)
	c.JSON(status, response{Success: false, Error: pagex.ErrorMessage(err)})
}
