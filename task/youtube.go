package task

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const defaultLookupTimeout = 8 * time.Second

var videoIDPattern = regexp.MustCompile(`/watch\?v=([a-zA-Z0-9_-]{11})`)

// YouTubeHandler resolves a playback request to a video URL. Queries are
// looked up against YouTube's search results page; when the lookup fails
// or times out the handler degrades to a search-results link instead of
// failing.
type YouTubeHandler struct {
	actuator Actuator
	client   *http.Client
	// resultsURL is the search-results endpoint; overridable in tests.
	resultsURL string
}

// NewYouTubeHandler creates the handler for the "youtube" task type.
// lookupTimeout bounds the first-video lookup; zero means 8 seconds.
func NewYouTubeHandler(actuator Actuator, lookupTimeout time.Duration) *YouTubeHandler {
	if lookupTimeout == 0 {
		lookupTimeout = defaultLookupTimeout
	}
	return &YouTubeHandler{
		actuator:   actuator,
		client:     &http.Client{Timeout: lookupTimeout},
		resultsURL: "https://www.youtube.com/results",
	}
}

// Type returns the task-type identifier.
func (h *YouTubeHandler) Type() string { return "youtube" }

// Execute treats params as a direct link when it looks like a URL;
// otherwise it looks up the first matching video and falls back to a
// search-results link when the lookup fails.
func (h *YouTubeHandler) Execute(ctx context.Context, params string) Result {
	query := strings.TrimSpace(params)

	var target string
	switch {
	case strings.HasPrefix(query, "http://"), strings.HasPrefix(query, "https://"):
		target = query
	case strings.HasPrefix(query, "www."):
		target = "https://" + query
	default:
		if videoURL, err := h.findFirstVideo(ctx, query); err == nil {
			target = videoURL
		} else {
			target = h.searchURL(query)
		}
	}

	if err := h.actuator.OpenExternal(ctx, target); err != nil {
		return failureResult(h.Type(), "Failed to find YouTube video: %v", err)
	}

	return successResult(h.Type(), fmt.Sprintf("Playing on YouTube: %s", query), target)
}

// findFirstVideo scrapes the search-results page for the first video ID.
func (h *YouTubeHandler) findFirstVideo(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.searchURL(query), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup returned status %d", resp.StatusCode)
	}

	// The first watch link on the page is the top result.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read lookup response: %w", err)
	}

	match := videoIDPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("no video found for %q", query)
	}

	return "https://www.youtube.com/watch?v=" + string(match[1]), nil
}

func (h *YouTubeHandler) searchURL(query string) string {
	return h.resultsURL + "?search_query=" + queryEscape(query)
}
