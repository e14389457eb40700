// Package server exposes the chat engine, search augmentation, task
// execution and conversation storage over HTTP.
//
// Information Hiding:
// - Route layout and wire formats hidden behind Handler()
// - Streaming protocol details (sentinel framing) kept out of callers
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hussain-wac/chatfreegpt-rewamp/chat"
	"github.com/hussain-wac/chatfreegpt-rewamp/search"
	"github.com/hussain-wac/chatfreegpt-rewamp/storage"
	"github.com/hussain-wac/chatfreegpt-rewamp/task"
)

// streamSentinel separates the JSON control frame from the text stream
// on the search-stream endpoint. Clients split on the first occurrence.
const streamSentinel = "\n---STREAM---\n"

// Server wires the application components behind an HTTP API.
type Server struct {
	engine   *chat.Engine
	planner  *search.Planner
	searcher search.Provider
	registry *task.Registry
	store    storage.ConversationStorage
	logger   *slog.Logger

	allowedOrigin string
	maxResults    int
}

// Options configures optional server behavior.
type Options struct {
	// AllowedOrigin is echoed in CORS headers; empty means "*".
	AllowedOrigin string
	// MaxSearchResults bounds the /api/search endpoint; zero means 5.
	MaxSearchResults int
}

// New creates a server over the given components.
func New(engine *chat.Engine, planner *search.Planner, searcher search.Provider,
	registry *task.Registry, store storage.ConversationStorage,
	logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = 5
	}
	return &Server{
		engine:        engine,
		planner:       planner,
		searcher:      searcher,
		registry:      registry,
		store:         store,
		logger:        logger,
		allowedOrigin: opts.AllowedOrigin,
		maxResults:    opts.MaxSearchResults,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("POST /api/chat/search-stream", s.handleSearchStream)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/execute-task", s.handleExecuteTask)

	mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	mux.HandleFunc("POST /api/conversations", s.handleSaveConversation)
	mux.HandleFunc("GET /api/conversations/{id}", s.handleGetConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}", s.handleDeleteConversation)

	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.cors(mux)
}

// cors handles preflight requests and sets the CORS headers the
// browser frontend needs.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body."})
		return false
	}
	return true
}
