package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-transformer/internal/config"
)

// ErrNoAIConfigured means no API key is set; callers fall back to the
// deterministic assistant instead of failing the request.
var ErrNoAIConfigured = errors.New("OPENAI_API_KEY is not configured")

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient turns a system prompt plus a JSON payload into a JSON
// object reply.
type ChatClient interface {
	CompleteJSON(ctx context.Context, systemPrompt string, payload interface{}) (map[string]interface{}, error)
}

type OpenAIClient struct {
	apiKey string
	model  string
	client *http.Client
}

func NewOpenAIClient(cfg *config.Config) ChatClient {
	return &OpenAIClient{
		apiKey: cfg.OpenAIKey,
		model:  cfg.RulesModel,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type openAIRequest struct {
	Model          string            `json:"model"`
	Messages       []ChatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt string, payload interface{}) (map[string]interface{}, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrNoAIConfigured
	}

	userContent, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal payload: %w", err)
	}

	reqBody := openAIRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(userContent)},
		},
		Temperature:    0.1,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("openai error: %d", resp.StatusCode)
	}

	var oaiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&oaiResp); err != nil {
		return nil, err
	}
	if len(oaiResp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices in response")
	}

	return parseJSONObject(oaiResp.Choices[0].Message.Content)
}

// parseJSONObject tolerates models that wrap the JSON in prose: it
// falls back to the outermost brace pair.
func parseJSONObject(text string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty AI response")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return parsed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("AI response did not contain JSON")
	}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("AI response JSON is not an object: %w", err)
	}
	return parsed, nil
}
