package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single conversation turn on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the body posted to the completion endpoint.
type CompletionRequest struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// CompletionResponse is the body returned by the completion endpoint.
type CompletionResponse struct {
	Response string `json:"response" mapstructure:"response"`
	Fallback bool   `json:"fallback,omitempty" mapstructure:"fallback"`
}

// DecodeResponse parses a completion body. Loosely typed fields such as
// "fallback": "true" are accepted; a missing or blank response is not.
func DecodeResponse(body []byte) (*CompletionResponse, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse response body: %w", err)
	}
	if raw == nil {
		return nil, errors.New("response body is not an object")
	}

	var out CompletionResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	if strings.TrimSpace(out.Response) == "" {
		return nil, errors.New("response field is missing or empty")
	}

	return &out, nil
}
