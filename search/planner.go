package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

const (
	// historyWindow is how far back query construction looks.
	historyWindow = 6
	// contextEntries is how many qualifying user messages are kept.
	contextEntries = 2
	// contextEntryLimit truncates each context entry.
	contextEntryLimit = 80
	// snippetLimit truncates source snippets.
	snippetLimit = 150
)

// Keywords that suggest visual content is useful.
var visualKeywords = []string{
	"who is", "who was", "who were",
	"show me", "picture of", "photo of", "images of", "look like", "looks like",
	"where is", "where are",
	"celebrity", "actor", "actress", "singer", "player", "athlete",
	"flag of", "logo of", "brand",
	"mountain", "beach", "island",
	"painting", "artwork",
}

// Keywords that suggest no images are needed (abstract/conceptual).
// These take strict priority over the visual keywords.
var noImageKeywords = []string{
	"what is", "what are", "how to", "why", "explain", "define",
	"difference between", "meaning of", "tutorial", "guide",
	"code", "programming", "error", "bug", "fix",
	"best way", "how can i", "should i", "help me",
	"calculate", "convert", "translate",
	"who are you", "your name", "your creator", "who made you", "who built you",
	"create", "generate", "make me", "draw", "write",
	"can you", "do you", "are you", "tell me",
}

// Planner decides whether and how to augment a chat turn with web
// search results.
type Planner struct {
	provider   Provider
	maxResults int
	maxImages  int
	logger     *slog.Logger
}

// NewPlanner creates a planner over a search provider.
func NewPlanner(provider Provider, maxResults, maxImages int, logger *slog.Logger) *Planner {
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxImages <= 0 {
		maxImages = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		provider:   provider,
		maxResults: maxResults,
		maxImages:  maxImages,
		logger:     logger,
	}
}

// BuildQuery combines recent user messages with the current query so
// vague follow-ups ("is he a good singer") still search for the right
// thing. Only user messages are used; assistant text would pollute the
// query with the model's own phrasing.
func BuildQuery(query string, history []llm.ChatMessage) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var recent []string
	for _, msg := range history {
		if msg.Role != llm.RoleUser || msg.Content == "" {
			continue
		}
		recent = append(recent, truncateRunes(msg.Content, contextEntryLimit))
	}
	if len(recent) > contextEntries {
		recent = recent[len(recent)-contextEntries:]
	}

	if len(recent) == 0 {
		return query
	}
	return strings.Join(recent, " ") + " " + query
}

// ShouldFetchImages reports whether a query would benefit from image
// results: true for people, places, landmarks and other visual topics,
// false for abstract or conceptual questions. A no-image keyword match
// wins over any visual match.
func ShouldFetchImages(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, keyword := range noImageKeywords {
		if strings.Contains(q, keyword) {
			return false
		}
	}
	for _, keyword := range visualKeywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}

// Plan runs one augmentation pass: builds the contextual query, fetches
// text results (and images when warranted), and shapes them into a
// Context. Provider faults degrade to empty results; Plan never fails
// the chat turn.
func (p *Planner) Plan(ctx context.Context, query string, history []llm.ChatMessage) Context {
	searchQuery := BuildQuery(query, history)

	results, err := p.provider.Search(ctx, searchQuery, p.maxResults)
	if err != nil {
		p.logger.Warn("web search failed", slog.String("query", searchQuery), slog.Any("error", err))
		results = nil
	}

	sources := shapeSources(results)

	var images []Image
	if ShouldFetchImages(query) {
		images, err = p.provider.SearchImages(ctx, searchQuery, p.maxImages)
		if err != nil {
			p.logger.Warn("image search failed", slog.String("query", searchQuery), slog.Any("error", err))
			images = nil
		}
	}

	return Context{
		Query:   searchQuery,
		Sources: sources,
		Images:  images,
	}
}

// shapeSources numbers results in retrieval order, resolves each URL,
// truncates snippets, and drops entries with no resolvable URL.
func shapeSources(results []Result) []Source {
	var sources []Source
	for _, r := range results {
		resolved := r.URL
		if resolved == "" {
			resolved = r.PrettyURL
		}
		if resolved == "" {
			continue
		}

		title := r.Title
		if title == "" {
			title = "No title"
		}

		snippet := truncateRunes(r.Snippet, snippetLimit)

		sources = append(sources, Source{
			Number: len(sources) + 1,
			Title:  title,
			URL:    resolved,
			Body:   snippet,
		})
	}
	return sources
}

// truncateRunes cuts s to at most n runes, preserving UTF-8 boundaries.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// PromptBlock formats the context as extra system text for the model:
// header, the query used, numbered sources, and citation instructions.
// The output is deterministic for a given Context.
func (c Context) PromptBlock() string {
	var sb strings.Builder

	sb.WriteString("## Web Search Results\n")
	fmt.Fprintf(&sb, "The user has enabled web search. Search query used: %q\n", c.Query)
	sb.WriteString("Here are the search results:\n\n")

	for _, src := range c.Sources {
		fmt.Fprintf(&sb, "[%d] **%s**\n   %s\n\n", src.Number, src.Title, src.Body)
	}

	if len(c.Images) > 0 {
		sb.WriteString("Relevant images have been found and are being displayed to the user above your response.\n")
	}

	sb.WriteString("IMPORTANT: Synthesize these results into a helpful response. " +
		"When citing a source, use ONLY the bracket number format like [1], [2], etc. " +
		"Do NOT write out URLs or links — the UI will automatically convert [1], [2] etc. into clickable links. " +
		"Never invent or guess URLs. Use the conversation history to understand what the user is referring to.")

	return sb.String()
}
