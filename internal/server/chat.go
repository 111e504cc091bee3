package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/ai"
	"github.com/spigell/mindmate/internal/chat"
	"github.com/spigell/mindmate/internal/utils"
)

const (
	maxRequestSize   = 64 << 10
	maxTokensLimit   = 2048
	maxTemperature   = 2.0
	defaultMaxTokens = chat.MaxTokens
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	var req chat.CompletionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestSize))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if provider != "" && provider != chat.Provider {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported provider: " + req.Provider})
		return
	}

	aiReq, err := toAIRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	log.Debug("chat request",
		zap.String("model", req.Model),
		zap.String("message_preview", utils.TruncateForLog(aiReq.Message, s.cfg.MaxLogLength)),
	)

	if s.completer == nil {
		log.Info("ai backend is not configured, answering locally")
		writeJSON(w, http.StatusOK, chat.CompletionResponse{Response: fallbackReply(aiReq.Message), Fallback: true})
		return
	}

	text, err := s.completer.Complete(r.Context(), aiReq)
	if err != nil {
		log.Warn("ai backend failed, answering locally", zap.Error(err))
		writeJSON(w, http.StatusOK, chat.CompletionResponse{Response: fallbackReply(aiReq.Message), Fallback: true})
		return
	}

	writeJSON(w, http.StatusOK, chat.CompletionResponse{Response: text})
}

// toAIRequest keeps the first system message and the last user message.
func toAIRequest(req chat.CompletionRequest) (ai.Request, error) {
	var out ai.Request
	for _, m := range req.Messages {
		content := strings.TrimSpace(m.Content)
		switch m.Role {
		case chat.RoleSystem:
			if out.System == "" {
				out.System = content
			}
		case chat.RoleUser:
			if content != "" {
				out.Message = content
			}
		}
	}

	if out.Message == "" {
		return out, errors.New("a non-empty user message is required")
	}

	if out.System == "" {
		out.System = chat.SystemInstruction
	}

	out.MaxTokens = req.MaxTokens
	switch {
	case out.MaxTokens <= 0:
		out.MaxTokens = defaultMaxTokens
	case out.MaxTokens > maxTokensLimit:
		out.MaxTokens = maxTokensLimit
	}

	out.Temperature = min(max(req.Temperature, 0), maxTemperature)

	return out, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
