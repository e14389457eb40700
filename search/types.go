// Package search provides web-search augmentation: a SearXNG-backed
// provider, the decision logic for when and how to search, and the
// formatting of retrieved results into citable model context.
package search

// Result is one raw text-search hit from the provider.
type Result struct {
	Title string `json:"title"`
	// URL is the resolved link. PrettyURL is the display variant some
	// engines return instead; it is used when URL is empty.
	URL       string  `json:"url"`
	PrettyURL string  `json:"pretty_url,omitempty"`
	Snippet   string  `json:"content"`
	Score     float64 `json:"score,omitempty"`
}

// Image is one raw image-search hit from the provider.
type Image struct {
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	SourceURL    string `json:"sourceUrl"`
}

// Source is a numbered, citable search result embedded in model context
// and sent to the client in the stream control frame.
type Source struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Body   string `json:"body"`
}

// Context is the transient, request-scoped product of one augmentation
// pass. It is embedded into the system prompt and discarded after the
// request; it is never stored in history.
type Context struct {
	Query   string   `json:"query"`
	Sources []Source `json:"sources"`
	Images  []Image  `json:"images"`
}
