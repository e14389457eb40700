package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
)

// fakeSearcher is a scripted Provider for planner tests.
type fakeSearcher struct {
	results    []Result
	images     []Image
	err        error
	imagesErr  error
	lastQuery  string
	imageQuery string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	f.lastQuery = query
	return f.results, f.err
}

func (f *fakeSearcher) SearchImages(ctx context.Context, query string, maxResults int) ([]Image, error) {
	f.imageQuery = query
	return f.images, f.imagesErr
}

func TestBuildQueryNoHistory(t *testing.T) {
	got := BuildQuery("latest go release", nil)
	if got != "latest go release" {
		t.Errorf("BuildQuery = %q, want the query unchanged", got)
	}
}

func TestBuildQueryCombinesRecentUserMessages(t *testing.T) {
	history := []llm.ChatMessage{
		llm.UserMessage("tell me about Einstein"),
		llm.AssistantMessage("Albert Einstein was a physicist..."),
		llm.UserMessage("did he win a Nobel prize"),
		llm.AssistantMessage("Yes, in 1921."),
	}

	got := BuildQuery("where was he born", history)
	want := "tell me about Einstein did he win a Nobel prize where was he born"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQuerySkipsAssistantMessages(t *testing.T) {
	history := []llm.ChatMessage{
		llm.AssistantMessage("model text that must not leak"),
	}

	got := BuildQuery("hello", history)
	if strings.Contains(got, "must not leak") {
		t.Errorf("assistant text leaked into query: %q", got)
	}
}

func TestBuildQueryTruncatesLongEntries(t *testing.T) {
	long := strings.Repeat("a", 200)
	history := []llm.ChatMessage{llm.UserMessage(long)}

	got := BuildQuery("next", history)
	want := strings.Repeat("a", 80) + " next"
	if got != want {
		t.Errorf("long entries must be cut to 80 chars, got length %d", len(got))
	}
}

func TestBuildQueryTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the limit must be dropped whole,
	// never cut mid-sequence.
	history := []llm.ChatMessage{llm.UserMessage(strings.Repeat("a", 79) + "éé")}

	got := BuildQuery("next", history)
	if !utf8.ValidString(got) {
		t.Fatalf("BuildQuery produced invalid UTF-8: %q", got)
	}
	want := strings.Repeat("a", 79) + "é next"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQueryKeepsLastTwoUserMessages(t *testing.T) {
	history := []llm.ChatMessage{
		llm.UserMessage("one"),
		llm.UserMessage("two"),
		llm.UserMessage("three"),
		llm.UserMessage("four"),
	}

	got := BuildQuery("five", history)
	want := "three four five"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestBuildQueryWindowLimitsLookback(t *testing.T) {
	// Ten messages; only the last six are considered at all.
	var history []llm.ChatMessage
	for _, s := range []string{"a", "b", "c", "d"} {
		history = append(history, llm.UserMessage(s))
	}
	for i := 0; i < 6; i++ {
		history = append(history, llm.AssistantMessage("reply"))
	}

	got := BuildQuery("q", history)
	if got != "q" {
		t.Errorf("user messages outside the window must be ignored, got %q", got)
	}
}

func TestShouldFetchImages(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"who is the president of france", true},
		{"show me the eiffel tower", true},
		{"picture of a red panda", true},
		{"what is the capital of france", false},
		{"how to write a for loop", false},
		{"explain quantum entanglement", false},
		{"random gibberish query", false},
		// no-image keywords win even when a visual keyword is present
		{"can you show me a picture of a cat", false},
		{"WHO IS Marie Curie", true},
	}

	for _, tc := range cases {
		if got := ShouldFetchImages(tc.query); got != tc.want {
			t.Errorf("ShouldFetchImages(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestPlanShapesSources(t *testing.T) {
	searcher := &fakeSearcher{
		results: []Result{
			{Title: "First", URL: "https://a.example", Snippet: "alpha"},
			{Title: "No link", Snippet: "dropped"},
			{Title: "Second", PrettyURL: "b.example", Snippet: strings.Repeat("b", 200)},
		},
	}
	planner := NewPlanner(searcher, 5, 4, nil)

	sctx := planner.Plan(context.Background(), "what is the capital of france", nil)

	if len(sctx.Sources) != 2 {
		t.Fatalf("expected 2 sources (URL-less dropped), got %d", len(sctx.Sources))
	}
	if sctx.Sources[0].Number != 1 || sctx.Sources[1].Number != 2 {
		t.Errorf("sources must be numbered from 1: %+v", sctx.Sources)
	}
	if sctx.Sources[1].URL != "b.example" {
		t.Errorf("PrettyURL must be the fallback, got %q", sctx.Sources[1].URL)
	}
	if len(sctx.Sources[1].Body) != 150 {
		t.Errorf("body must be truncated to 150 chars, got %d", len(sctx.Sources[1].Body))
	}
	if len(sctx.Images) != 0 {
		t.Errorf("conceptual query must not fetch images")
	}
}

func TestPlanTruncatesSnippetOnRuneBoundary(t *testing.T) {
	searcher := &fakeSearcher{
		results: []Result{{Title: "T", URL: "https://a.example", Snippet: strings.Repeat("ü", 160)}},
	}
	planner := NewPlanner(searcher, 5, 4, nil)

	sctx := planner.Plan(context.Background(), "rune heavy snippet", nil)

	if len(sctx.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sctx.Sources))
	}
	body := sctx.Sources[0].Body
	if !utf8.ValidString(body) {
		t.Fatalf("snippet truncation produced invalid UTF-8: %q", body)
	}
	if utf8.RuneCountInString(body) != 150 {
		t.Errorf("snippet must be cut to 150 runes, got %d", utf8.RuneCountInString(body))
	}
}

func TestPlanFetchesImagesForVisualQuery(t *testing.T) {
	searcher := &fakeSearcher{
		images: []Image{{Title: "portrait", ImageURL: "https://img.example/1.jpg"}},
	}
	planner := NewPlanner(searcher, 5, 4, nil)

	sctx := planner.Plan(context.Background(), "who is marie curie", nil)

	if len(sctx.Images) != 1 {
		t.Fatalf("expected image results, got %d", len(sctx.Images))
	}
	if searcher.imageQuery != "who is marie curie" {
		t.Errorf("image search must use the combined query, got %q", searcher.imageQuery)
	}
}

func TestPlanDegradesOnProviderFault(t *testing.T) {
	searcher := &fakeSearcher{
		err:       errors.New("searxng down"),
		imagesErr: errors.New("searxng down"),
	}
	planner := NewPlanner(searcher, 5, 4, nil)

	sctx := planner.Plan(context.Background(), "who is marie curie", nil)

	if len(sctx.Sources) != 0 || len(sctx.Images) != 0 {
		t.Errorf("provider faults must degrade to empty results: %+v", sctx)
	}
	if sctx.Query != "who is marie curie" {
		t.Errorf("query must still be recorded, got %q", sctx.Query)
	}
}

func TestPromptBlockFormat(t *testing.T) {
	sctx := Context{
		Query: "marie curie",
		Sources: []Source{
			{Number: 1, Title: "Marie Curie", URL: "https://en.wikipedia.org/wiki/Marie_Curie", Body: "Polish physicist"},
			{Number: 2, Title: "Nobel Prize", URL: "https://nobelprize.org", Body: "1903 and 1911"},
		},
		Images: []Image{{Title: "portrait", ImageURL: "https://img.example/1.jpg"}},
	}

	block := sctx.PromptBlock()

	if !strings.HasPrefix(block, "## Web Search Results\n") {
		t.Errorf("block must start with the header, got %q", block[:40])
	}
	if !strings.Contains(block, `Search query used: "marie curie"`) {
		t.Errorf("block must name the query used:\n%s", block)
	}
	if !strings.Contains(block, "[1] **Marie Curie**\n   Polish physicist\n\n") {
		t.Errorf("source formatting wrong:\n%s", block)
	}
	if !strings.Contains(block, "[2] **Nobel Prize**") {
		t.Errorf("second source missing:\n%s", block)
	}
	if !strings.Contains(block, "being displayed to the user") {
		t.Errorf("image note missing when images are present:\n%s", block)
	}
	if !strings.Contains(block, "IMPORTANT: Synthesize these results") {
		t.Errorf("citation instructions missing:\n%s", block)
	}
}

func TestPromptBlockOmitsImageNoteWithoutImages(t *testing.T) {
	sctx := Context{Query: "q", Sources: []Source{{Number: 1, Title: "t", URL: "u", Body: "b"}}}

	if strings.Contains(sctx.PromptBlock(), "being displayed") {
		t.Error("image note must be absent when there are no images")
	}
}

func TestPromptBlockDeterministic(t *testing.T) {
	sctx := Context{Query: "q", Sources: []Source{{Number: 1, Title: "t", URL: "u", Body: "b"}}}

	if sctx.PromptBlock() != sctx.PromptBlock() {
		t.Error("PromptBlock must be deterministic")
	}
}
