package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate sends prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (c *implClient) Generate(ctx context.Context, prompt string) (string, error) {
	var text string
	err := c.withRotation(ctx, func(client *genai.Client) error {
		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			return err
		}
		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return fmt.Errorf("empty response from Gemini")
		}
		var b strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		text = b.String()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}

// Embed returns embeddings for texts using the given embedding model.
func (c *implClient) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	var vectors [][]float32
	err := c.withRotation(ctx, func(client *genai.Client) error {
		resp, err := client.Models.EmbedContent(ctx, model, contents, nil)
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Embeddings) != len(texts) {
			return fmt.Errorf("got %d embeddings for %d texts", embeddingCount(resp), len(texts))
		}
		vectors = make([][]float32, len(resp.Embeddings))
		for i, e := range resp.Embeddings {
			vectors[i] = e.Values
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	return vectors, nil
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}

// withRotation runs call with each key in turn until one is not rate limited.
func (c *implClient) withRotation(ctx context.Context, call func(*genai.Client) error) error {
	var lastErr error

	for range len(c.apiKeys) {
		idx, client, err := c.client(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey(idx)
			continue
		}

		err = call(client)
		if err == nil {
			return nil
		}
		if isRateLimited(err) {
			c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			c.rotateKey(idx)
			lastErr = err
			continue
		}
		return err
	}

	return fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// client returns the cached client for the current key.
func (c *implClient) client(ctx context.Context) (int, *genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.currentKey
	if cl, ok := c.clients[idx]; ok {
		return idx, cl, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.apiKeys[idx],
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	cl, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return idx, nil, err
	}
	c.clients[idx] = cl
	return idx, cl, nil
}

// rotateKey advances past idx. Another goroutine may already have rotated.
func (c *implClient) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}
