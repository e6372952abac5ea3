// Package fallback adapts OpenAI chat completions as the secondary model
// backend. It is deliberately text-only: the fallback path has no tool
// access, so the whole effective history is translated into plain chat
// messages and completed in one request.
package fallback

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/charla-ai/charla/bot/contract"
)

type Config struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model   string        `split_words:"true" default:"gpt-3.5-turbo"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"30s"`
}

type Client struct {
	client openaisdk.Client
	model  string
}

var _ contractx.FallbackModel = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key is required", contractx.ErrValidation)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = string(openaisdk.ChatModelGPT3_5Turbo)
	}

	return &Client{
		client: openaisdk.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *Client) Source() contractx.Source {
	return contractx.SourceOpenAI
}

// Complete translates the history (user -> user, model -> assistant) and
// returns the completion text.
func (c *Client) Complete(ctx context.Context, history []contractx.Turn) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(c.model),
		Messages: toMessages(history),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", contractx.ErrModelInvoke)
	}
	return completion.Choices[0].Message.Content, nil
}

func toMessages(history []contractx.Turn) []openaisdk.ChatCompletionMessageParamUnion {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(history))
	for _, turn := range history {
		if turn.Role == contractx.RoleModel {
			messages = append(messages, openaisdk.AssistantMessage(turn.Text))
			continue
		}
		messages = append(messages, openaisdk.UserMessage(turn.Text))
	}
	return messages
}
