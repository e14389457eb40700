package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const defaultUserAgent = "chatfreegpt/1.0"

// Provider performs text and image searches. Implementations degrade to
// empty results on provider faults rather than failing the chat turn;
// callers treat an error as "no augmentation available".
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
	SearchImages(ctx context.Context, query string, maxResults int) ([]Image, error)
}

// Client handles communication with a SearXNG instance via its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new SearXNG client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
}

// searchResponse is the JSON envelope SearXNG returns.
type searchResponse struct {
	Results []searxngResult `json:"results"`
}

type searxngResult struct {
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	PrettyURL    string  `json:"pretty_url"`
	Content      string  `json:"content"`
	ImgSrc       string  `json:"img_src"`
	ThumbnailSrc string  `json:"thumbnail_src"`
	Score        float64 `json:"score"`
}

// Search performs a text search and returns the top maxResults hits,
// highest score first.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	raw, err := c.get(ctx, query, "")
	if err != nil {
		return nil, err
	}

	sort.Slice(raw, func(i, j int) bool {
		return raw[i].Score > raw[j].Score
	})

	if len(raw) > maxResults {
		raw = raw[:maxResults]
	}

	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = Result{
			Title:     r.Title,
			URL:       r.URL,
			PrettyURL: r.PrettyURL,
			Snippet:   r.Content,
			Score:     r.Score,
		}
	}
	return results, nil
}

// SearchImages performs an image search and returns up to maxResults hits.
func (c *Client) SearchImages(ctx context.Context, query string, maxResults int) ([]Image, error) {
	raw, err := c.get(ctx, query, "images")
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, maxResults)
	for _, r := range raw {
		if r.ImgSrc == "" {
			continue
		}
		images = append(images, Image{
			Title:        r.Title,
			ImageURL:     r.ImgSrc,
			ThumbnailURL: r.ThumbnailSrc,
			SourceURL:    r.URL,
		})
		if len(images) == maxResults {
			break
		}
	}
	return images, nil
}

// HealthCheck verifies that the SearXNG instance is accessible and its
// JSON API is enabled.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.get(ctx, "test", "")
	return err
}

func (c *Client) get(ctx context.Context, query, categories string) ([]searxngResult, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	if categories != "" {
		params.Add("categories", categories)
	}

	fullURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("SearXNG returned 403 Forbidden. JSON API may not be enabled; check settings.yml for 'formats: [html, json]'")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("SearXNG returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return parsed.Results, nil
}

// Verify Client implements Provider
var _ Provider = (*Client)(nil)
