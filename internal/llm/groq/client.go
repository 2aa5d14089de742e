package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vralchenko/ai-jurist/internal/llm"
)

// DefaultBaseURL targets Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// Client implements llm.Client against any OpenAI-compatible chat API.
type Client struct {
	api *openai.Client
}

// NewClient constructs a Client. An empty baseURL falls back to Groq.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{api: openai.NewClientWithConfig(cfg)}, nil
}

// Complete issues a blocking chat completion and returns content plus usage.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Result, error) {
	resp, err := c.api.CreateChatCompletion(ctx, chatRequest(req, false))
	if err != nil {
		return llm.Result{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.Result{}, errors.New("chat completion: response missing choices")
	}
	return llm.Result{
		Content:     resp.Choices[0].Message.Content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// CompleteStream issues a streaming chat completion and returns the delta stream.
func (c *Client) CompleteStream(ctx context.Context, req llm.Request) (llm.Stream, error) {
	s, err := c.api.CreateChatCompletionStream(ctx, chatRequest(req, true))
	if err != nil {
		return nil, fmt.Errorf("chat completion stream: %w", err)
	}
	return &stream{inner: s}, nil
}

type stream struct {
	inner *openai.ChatCompletionStream
}

// Recv returns the next non-empty content delta, or io.EOF when the upstream
// closes the stream.
func (s *stream) Recv() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("stream recv: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if content := resp.Choices[0].Delta.Content; content != "" {
			return content, nil
		}
	}
}

func (s *stream) Close() error {
	return s.inner.Close()
}

func chatRequest(req llm.Request, streaming bool) openai.ChatCompletionRequest {
	temperature := req.Temperature
	if temperature <= 0 {
		// go-openai drops a zero temperature from the payload; the smallest
		// positive float keeps an explicit near-zero setting on the wire.
		temperature = math.SmallestNonzeroFloat32
	}
	return openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature,
		Stream:      streaming,
	}
}

var _ llm.Client = (*Client)(nil)
