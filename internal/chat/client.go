package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/mindmate/internal/logger"
)

const (
	Endpoint    = "/api/chat"
	Provider    = "gemini"
	Model       = "gemini-1.5-flash"
	MaxTokens   = 500
	Temperature = 0.7

	SystemInstruction = "You are an AI career mentor. Provide helpful, personalized career guidance, " +
		"answer questions about different professions, and give practical advice. " +
		"Keep responses concise but informative."

	FallbackNote = "(Note: Using a temporary response while AI service initializes.)"
	ApologyText  = "I'm having trouble connecting to my AI services right now. Please try again in a moment, " +
		"or feel free to ask about career paths, skills development, or job search strategies!"

	KeyEnter = "Enter"

	contentType     = "application/json"
	maxResponseSize = 1 << 20
	defaultTimeout  = 30 * time.Second
)

// Client sends chat messages to the completion endpoint and keeps the transcript.
type Client struct {
	baseURL    string
	transcript *Transcript
	logger     *zap.Logger
	pending    atomic.Bool

	HTTPClient *http.Client
}

func New(baseURL string, transcript *Transcript, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if transcript == nil {
		transcript = NewTranscript(nil)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		transcript: transcript,
		logger:     logger.WithAIFields(log, Provider, Model),
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) Transcript() *Transcript { return c.transcript }

// Pending reports whether a request is in flight.
func (c *Client) Pending() bool { return c.pending.Load() }

// HandleKey submits text when key is Enter.
func (c *Client) HandleKey(ctx context.Context, key, text string) error {
	if key != KeyEnter {
		return nil
	}
	return c.Submit(ctx, text)
}

// Submit sends text to the mentor and appends the exchange to the transcript.
// Service failures are recovered with a local apology and never returned.
func (c *Client) Submit(ctx context.Context, text string) error {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil
	}

	if !c.pending.CompareAndSwap(false, true) {
		return ErrRequestInFlight
	}
	defer c.pending.Store(false)

	c.post(SenderUser, message, false)
	if c.transcript.view != nil {
		c.transcript.view.ClearInput()
	}

	typing := c.post(SenderAssistant, "", true)

	resp, err := c.send(ctx, message)

	c.transcript.remove(typing.ID)

	if err != nil {
		c.logger.Warn("chat request failed, using local reply", zap.Error(err))
		c.post(SenderAssistant, ApologyText, false)
		return nil
	}

	c.post(SenderAssistant, resp.Response, false)

	if resp.Fallback {
		c.logger.Info("completion service answered in fallback mode")
		c.post(SenderAssistant, FallbackNote, false)
	}

	return nil
}

func (c *Client) post(sender Sender, text string, typing bool) Entry {
	e := c.transcript.append(sender, text, typing)
	c.logger.Debug("transcript entry",
		zap.String(logger.FieldSender, string(sender)),
		zap.Int("entry_id", e.ID),
		zap.Bool("typing", typing),
	)
	return e
}

// NewRequest builds the fixed single-turn request for message.
func NewRequest(message string) CompletionRequest {
	return CompletionRequest{
		Provider: Provider,
		Model:    Model,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemInstruction},
			{Role: RoleUser, Content: message},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	}
}

func (c *Client) send(ctx context.Context, message string) (*CompletionResponse, error) {
	payload, err := json.Marshal(NewRequest(message))
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := c.baseURL + Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	c.logger.Debug("make request", zap.String("url", url))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &ServiceError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	out, err := DecodeResponse(data)
	if err != nil {
		return nil, &ServiceError{Status: resp.StatusCode, Err: err}
	}

	return out, nil
}
