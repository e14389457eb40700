package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/hussain-wac/chatfreegpt-rewamp/chat"
	"github.com/hussain-wac/chatfreegpt-rewamp/llm"
	"github.com/hussain-wac/chatfreegpt-rewamp/search"
)

type chatRequest struct {
	Message        string            `json:"message"`
	Model          string            `json:"model"`
	ConversationID string            `json:"conversation_id"`
	History        []llm.ChatMessage `json:"history"`
}

// handleChat runs a non-streaming chat turn. History comes from the
// stored conversation when a conversation_id is given, otherwise from
// the request body.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please enter a message."})
		return
	}

	history := req.History
	if req.ConversationID != "" {
		convo, found, err := s.store.Load(r.Context(), req.ConversationID)
		if err != nil {
			s.logger.Error("failed to load conversation", slog.String("id", req.ConversationID), slog.Any("error", err))
		} else if found {
			history = convo.Messages
		}
	}

	response, err := s.engine.Query(r.Context(), chat.Request{
		Query:   req.Message,
		Model:   req.Model,
		History: chat.CleanHistory(history),
	})
	if err != nil {
		// Faults surface in-band so the frontend renders them as a
		// normal assistant message.
		s.writeJSON(w, http.StatusOK, map[string]string{"response": fmt.Sprintf("Error: %v", err)})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// handleChatStream relays response chunks as plain text as they arrive.
func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please enter a message."})
		return
	}

	s.streamResponse(w, r, chat.Request{
		Query:   req.Message,
		Model:   req.Model,
		History: chat.CleanHistory(req.History),
	})
}

// controlFrame is the JSON prefix sent before the text stream on the
// search-stream endpoint.
type controlFrame struct {
	Images  []search.Image  `json:"images"`
	Sources []search.Source `json:"sources"`
}

// handleSearchStream augments the turn with web search results. The
// response starts with a JSON control frame carrying sources and
// images, then the sentinel, then the plain text stream.
func (s *Server) handleSearchStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Please enter a message."})
		return
	}

	history := chat.CleanHistory(req.History)
	plan := s.planner.Plan(r.Context(), req.Message, history)

	// Empty slices, not null, so clients can iterate unconditionally.
	frame := controlFrame{Images: plan.Images, Sources: plan.Sources}
	if frame.Images == nil {
		frame.Images = []search.Image{}
	}
	if frame.Sources == nil {
		frame.Sources = []search.Source{}
	}

	s.streamResponse(w, r, chat.Request{
		Query:       req.Message,
		Model:       req.Model,
		History:     history,
		ExtraSystem: plan.PromptBlock(),
	}, frame)
}

// streamResponse runs the engine stream against the response writer.
// When a control frame is given it is written first, followed by the
// sentinel.
func (s *Server) streamResponse(w http.ResponseWriter, r *http.Request, req chat.Request, prefix ...controlFrame) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	flusher, canFlush := w.(http.Flusher)
	flush := func() {
		if canFlush {
			flusher.Flush()
		}
	}

	if len(prefix) > 0 {
		s.writeFrame(w, prefix[0])
		flush()
	}

	_, err := s.engine.QueryStream(r.Context(), req, func(chunk string) error {
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		flush()
		return nil
	})
	if err != nil {
		// Backend faults were already emitted in-band as a terminal
		// "Error: ..." chunk; a consumer error means the client left.
		s.logger.Warn("stream ended with error", slog.Any("error", err))
	}
}

func (s *Server) writeFrame(w http.ResponseWriter, frame controlFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("failed to marshal control frame", slog.Any("error", err))
		return
	}
	w.Write(data)
	w.Write([]byte(streamSentinel))
}

type searchRequest struct {
	Query string `json:"query"`
}

// handleSearch performs a bare web search and returns raw results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "No query provided"})
		return
	}

	results, err := s.searcher.Search(r.Context(), req.Query, s.maxResults)
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "results": results})
}

type taskRequest struct {
	Type   string `json:"type"`
	Params string `json:"params"`
}

// handleExecuteTask runs a single browser automation task.
func (s *Server) handleExecuteTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Task type not specified",
		})
		return
	}
	if !slices.Contains(s.registry.Types(), req.Type) {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": fmt.Sprintf("Unknown task type: %s", req.Type),
		})
		return
	}

	result := s.registry.Execute(r.Context(), req.Type, req.Params)
	s.writeJSON(w, http.StatusOK, result)
}

// handleModels lists the models the provider offers.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.engine.Provider().(llm.ModelLister)
	if !ok {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":  "error",
			"message": fmt.Sprintf("provider %s does not support model listing", s.engine.Provider().Name()),
		})
		return
	}

	models, err := lister.ListModels(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "models": models})
}

// handleHealth pings the model backend.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	provider := s.engine.Provider()

	checker, ok := provider.(llm.HealthChecker)
	if !ok {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": fmt.Sprintf("%s has no health probe", provider.Name()),
		})
		return
	}

	if err := checker.HealthCheck(r.Context()); err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unhealthy",
			"message": err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": fmt.Sprintf("%s is running", provider.Name()),
	})
}
