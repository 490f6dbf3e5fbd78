// Package aiassist wraps the OpenAI API behind the Embedder and Summarizer
// contracts. Both are optional collaborators: without an API key the service
// runs entirely on the deterministic engines, so construction returns nil
// rather than a half-configured client.
package aiassist

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	summarySystemPrompt = "You are a cautious, non-diagnostic assistant. Summarize interaction level " +
		"(high/medium/low) and likely symptom attributions per medication. Add a one-line caution: " +
		"informational only, not medical advice."
	maxSummaryPayload = 6000
	maxSummaryTokens  = 220
)

// Client implements interfaces.Embedder and interfaces.Summarizer over the
// OpenAI API.
type Client struct {
	api       *openai.Client
	chatModel string
	embModel  string
}

// New creates a client, or nil when no API key is configured.
func New(apiKey, chatModel, embModel string) *Client {
	if apiKey == "" {
		return nil
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	if embModel == "" {
		embModel = string(openai.SmallEmbedding3)
	}
	return &Client{
		api:       openai.NewClient(apiKey),
		chatModel: chatModel,
		embModel:  embModel,
	}
}

// Embed returns one embedding vector per input text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.embModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response size mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// Summarize produces a short plain-English summary of a triage payload.
// The payload is serialized and truncated so prompts stay small.
func (c *Client) Summarize(ctx context.Context, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary payload: %w", err)
	}
	if len(data) > maxSummaryPayload {
		data = data[:maxSummaryPayload]
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Data:\n%s\nTask: Produce a 3-5 sentence plain-English summary.", data)},
		},
		Temperature: 0.2,
		MaxTokens:   maxSummaryTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
