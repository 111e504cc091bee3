package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/mindmate/internal/ai"
	"github.com/spigell/mindmate/internal/chat"
)

type stubCompleter struct {
	reply string
	err   error
	last  ai.Request
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func (s *stubCompleter) Model() string { return "stub-model" }

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, chat.Endpoint, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decodeChat(t *testing.T, w *httptest.ResponseRecorder) chat.CompletionResponse {
	t.Helper()
	out, err := chat.DecodeResponse(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return *out
}

func requestBody(t *testing.T, message string) string {
	t.Helper()
	data, err := json.Marshal(chat.NewRequest(message))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{}, nil, nil)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestChatForwardsToCompleter(t *testing.T) {
	completer := &stubCompleter{reply: "Look into UX research."}
	srv := New(Config{}, completer, zap.NewNop())

	w := postChat(t, srv, requestBody(t, "I like people and design"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := decodeChat(t, w)
	if got.Response != "Look into UX research." || got.Fallback {
		t.Fatalf("unexpected response: %+v", got)
	}

	if completer.last.System != chat.SystemInstruction || completer.last.Message != "I like people and design" {
		t.Fatalf("unexpected request: %+v", completer.last)
	}
	if completer.last.MaxTokens != chat.MaxTokens || completer.last.Temperature != chat.Temperature {
		t.Fatalf("unexpected generation settings: %+v", completer.last)
	}
}

func TestChatFallsBackWhenCompleterFails(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	completer := &stubCompleter{err: errors.New("quota exhausted")}
	srv := New(Config{}, completer, zap.New(core))

	w := postChat(t, srv, requestBody(t, "How do I write a resume?"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	got := decodeChat(t, w)
	if !got.Fallback {
		t.Fatalf("expected fallback flag, got %+v", got)
	}
	if !strings.Contains(got.Response, "resume") {
		t.Fatalf("expected resume advice, got %q", got.Response)
	}

	if observed.FilterMessage("ai backend failed, answering locally").Len() != 1 {
		t.Fatalf("expected failure to be logged, got %v", observed.All())
	}
}

func TestChatWithoutCompleter(t *testing.T) {
	srv := New(Config{}, nil, nil)

	got := decodeChat(t, postChat(t, srv, requestBody(t, "hello")))
	if !got.Fallback || got.Response != defaultReply {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestChatRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "hello"},
		{name: "no user message", body: `{"provider":"gemini","messages":[{"role":"system","content":"x"}]}`},
		{name: "blank user message", body: `{"messages":[{"role":"user","content":"  "}]}`},
		{name: "unsupported provider", body: `{"provider":"openai","messages":[{"role":"user","content":"hi"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &stubCompleter{reply: "unused"}
			srv := New(Config{}, completer, nil)

			w := postChat(t, srv, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if completer.calls != 0 {
				t.Fatalf("expected completer not to be called")
			}
		})
	}
}

func TestToAIRequestClampsSettings(t *testing.T) {
	tests := []struct {
		name        string
		maxTokens   int
		temperature float64
		wantTokens  int
		wantTemp    float64
	}{
		{name: "defaults", maxTokens: 0, temperature: 0.7, wantTokens: chat.MaxTokens, wantTemp: 0.7},
		{name: "too many tokens", maxTokens: 100000, temperature: 5, wantTokens: maxTokensLimit, wantTemp: maxTemperature},
		{name: "negative temperature", maxTokens: 10, temperature: -1, wantTokens: 10, wantTemp: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toAIRequest(chat.CompletionRequest{
				Messages:    []chat.Message{{Role: chat.RoleUser, Content: "hi"}},
				MaxTokens:   tt.maxTokens,
				Temperature: tt.temperature,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.MaxTokens != tt.wantTokens || got.Temperature != tt.wantTemp {
				t.Fatalf("unexpected settings: %+v", got)
			}
			if got.System != chat.SystemInstruction {
				t.Fatalf("expected default system instruction, got %q", got.System)
			}
		})
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowAll: true}, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, chat.Endpoint, nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestFallbackReply(t *testing.T) {
	if got := fallbackReply("Any INTERVIEW tips?"); !strings.Contains(got, "interview") {
		t.Fatalf("expected interview advice, got %q", got)
	}
	if got := fallbackReply("hmm"); got != defaultReply {
		t.Fatalf("expected default reply, got %q", got)
	}
}
