package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/policypulse/policypulse/internal/chat"
	"github.com/policypulse/policypulse/internal/pipeline"
)

type askRequest struct {
	User     string `json:"user"`
	Question string `json:"question"`
}

type askResponse struct {
	Answer  string               `json:"answer"`
	Sources []pipeline.SourceRef `json:"sources"`
}

type userRequest struct {
	User string `json:"user"`
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.User) == "" {
		writeError(w, http.StatusBadRequest, "user field required")
		return
	}

	answer, sources, err := s.answer.GenerateAnswer(r.Context(), req.User, req.Question)
	if err != nil {
		s.logger.Error("answer generation failed", "user", req.User, "error", err)
		switch {
		case errors.Is(err, pipeline.ErrRetrievalUnavailable), errors.Is(err, pipeline.ErrModelUnavailable):
			writeError(w, http.StatusBadGateway, "the assistant is temporarily unavailable, please try again")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if sources == nil {
		sources = []pipeline.SourceRef{}
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: answer, Sources: sources})
}

func (s *Server) clearMemory(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.User) == "" {
		writeError(w, http.StatusBadRequest, "user field required")
		return
	}

	if err := s.store.Clear(r.Context(), req.User); err != nil {
		s.logger.Error("memory clear failed", "user", req.User, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": fmt.Sprintf("Memory cleared for user %s", req.User),
	})
}

func (s *Server) viewMemory(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.User) == "" {
		writeError(w, http.StatusBadRequest, "user field required")
		return
	}

	mem, err := s.store.Get(r.Context(), req.User)
	if err != nil {
		s.logger.Error("memory view failed", "user", req.User, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if mem == nil {
		mem = []chat.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"memory": mem,
	})
}
