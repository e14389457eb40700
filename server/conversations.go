package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hussain-wac/chatfreegpt-rewamp/storage"
)

// handleListConversations returns all stored conversations, most
// recently updated first.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	convos, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list conversations", slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"conversations": convos,
	})
}

// handleSaveConversation stores or replaces one conversation. A missing
// ID creates a new conversation.
func (s *Server) handleSaveConversation(w http.ResponseWriter, r *http.Request) {
	var convo storage.Conversation
	if !s.decodeJSON(w, r, &convo) {
		return
	}

	now := time.Now().UTC()
	if convo.ID == "" {
		convo.ID = uuid.NewString()
		convo.CreatedAt = now
	}
	if convo.CreatedAt.IsZero() {
		convo.CreatedAt = now
	}
	convo.UpdatedAt = now

	if err := s.store.Save(r.Context(), convo); err != nil {
		s.logger.Error("failed to save conversation", slog.String("id", convo.ID), slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"conversation": convo,
	})
}

// handleGetConversation returns one conversation by ID.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	convo, found, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to load conversation", slog.String("id", id), slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	if !found {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "message": "Conversation not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"conversation": convo,
	})
}

// handleDeleteConversation removes one conversation by ID.
func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	exists, err := s.store.Exists(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to check conversation", slog.String("id", id), slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
		return
	}
	if !exists {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"status": "error", "message": "Conversation not found"})
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete conversation", slog.String("id", id), slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
