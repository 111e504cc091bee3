package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/mindmate/internal/ai"
	"github.com/spigell/mindmate/internal/utils"
)

const (
	defaultModel      = "gemini-1.5-flash"
	defaultMaxRetries = 2
	defaultMaxLogLen  = 200

	baseRetryDelay = 2 * time.Second
	maxRetryDelay  = 30 * time.Second
)

// wait is swapped in tests.
var wait = utils.WaitFor

var retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	chats *genai.Chats
}

func (c genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	chat, err := c.chats.Create(ctx, model, config, history)
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// Options configure a Generator.
type Options struct {
	Model        string
	MaxRetries   int
	MaxLogLength int
	Logger       *zap.Logger
}

// Generator sends single-turn chats to Gemini.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

var _ ai.Completer = (*Generator)(nil)

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, opts Options) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLen
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:      genaiChats{chats: client.Chats},
		model:      model,
		maxRetries: retries,
		maxLogLen:  maxLogLen,
		logger:     logger,
	}, nil
}

// Complete implements ai.Completer.
func (g *Generator) Complete(ctx context.Context, req ai.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	cfg.Temperature = genai.Ptr(float32(req.Temperature))

	return g.generate(ctx, req.System, req.Message, cfg)
}

// GenerateContent sends message with the given system instruction and default
// generation settings.
func (g *Generator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	return g.generate(ctx, system, message, &genai.GenerateContentConfig{})
}

func (g *Generator) generate(ctx context.Context, system, message string, cfg *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message must not be empty")
	}

	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	attempts := g.maxRetries
	if attempts <= 0 {
		attempts = 1
	}

	g.logger.Debug("gemini request",
		zap.Int("message_length", len([]rune(message))),
		zap.String("message_preview", utils.TruncateForLog(message, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := g.send(ctx, message, cfg)
		if err == nil {
			g.logger.Debug("gemini response",
				zap.Int("attempt", attempt),
				zap.String("response_preview", utils.TruncateForLog(out, g.maxLogLen)),
			)
			return out, nil
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == attempts {
			break
		}

		g.logger.Warn("gemini request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (g *Generator) send(ctx context.Context, message string, cfg *genai.GenerateContentConfig) (string, error) {
	chat, err := g.chats.Create(ctx, g.model, cfg, nil)
	if err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}

	return responseText(resp)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// retryDelay reports whether err is worth another attempt and how long to wait.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		if d, ok := parseRetryAfter(apiErr.Message); ok {
			if d > maxRetryDelay {
				return 0, false
			}
			return d, true
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
	default:
		return 0, false
	}

	return baseRetryDelay * time.Duration(attempt), true
}

func parseRetryAfter(message string) (time.Duration, bool) {
	m := retryAfterRe.FindStringSubmatch(message)
	if len(m) != 2 {
		return 0, false
	}

	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(secs * float64(time.Second)), true
}
