package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ChatMessage is one turn in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the upstream model for a specific output shape. The
// generator always requests "json_object".
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the chat-completion request payload.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is the subset of the chat-completion response the generator
// consumes.
type ChatResponse struct {
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ChatClient abstracts the language-model service so the generator can be
// exercised without network access.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// OpenAIConfig configures the HTTP chat-completion client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// OpenAIClient talks to an OpenAI-compatible chat-completion endpoint. One
// request per call: no retry loop, no backoff. A hung upstream holds the
// caller open until the configured client timeout, if any.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

const defaultBaseURL = "https://api.openai.com/v1"

// NewOpenAIClient builds a client from config, filling in the public API base
// URL when none is set.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// HasCredential reports whether an API key is configured.
func (c *OpenAIClient) HasCredential() bool {
	return c.apiKey != ""
}

// CreateChatCompletion performs a single chat-completion call.
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ChatResponse{}, fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return ChatResponse{}, fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Error != nil {
		return ChatResponse{}, fmt.Errorf("chat completion error: %s", chatResp.Error.Message)
	}
	return chatResp, nil
}
