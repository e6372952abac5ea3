// Package gemini adapts the Gemini API as the primary, tool-aware model
// backend. Tool declarations are converted once at construction; every call
// replays the full effective history, so the client itself is stateless and
// safe for concurrent turns.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	contractx "github.com/charla-ai/charla/bot/contract"
)

const defaultSystemInstruction = "Eres un asistente de IA servicial y potente. " +
	"Tu trabajo es ayudar a los usuarios respondiendo a sus preguntas. " +
	"Tienes acceso a varias herramientas para obtener información en tiempo real. " +
	"Debes priorizar el uso de estas herramientas siempre que una pregunta del usuario " +
	"pueda ser respondida por una de ellas. No dudes en utilizar tus herramientas."

type Config struct {
	APIKey            string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model             string        `split_words:"true" default:"gemini-1.5-flash"`
	SystemInstruction string        `envconfig:"SYSTEM_INSTRUCTION" split_words:"true"`
	Timeout           time.Duration `split_words:"true" default:"30s"`
}

type Client struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

var _ contractx.PrimaryModel = (*Client)(nil)

// New builds the Gemini client with the given tool declarations bound for
// every request.
func New(ctx context.Context, cfg Config, decls []*schema.ToolInfo) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key is required", contractx.ErrValidation)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: gemini model is required", contractx.ErrValidation)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     strings.TrimSpace(cfg.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", contractx.ErrModelInvoke, err)
	}

	tools, err := toGenAITools(decls)
	if err != nil {
		return nil, err
	}

	system := strings.TrimSpace(cfg.SystemInstruction)
	if system == "" {
		system = defaultSystemInstruction
	}

	return &Client{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Tools:             tools,
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	}, nil
}

func (c *Client) Source() contractx.Source {
	return contractx.SourceGemini
}

// Generate submits the effective history and returns either a direct text
// answer or the first tool invocation the model requested.
func (c *Client) Generate(ctx context.Context, history []contractx.Turn) (contractx.ModelResponse, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, toContents(history), c.config)
	if err != nil {
		return contractx.ModelResponse{}, classify(err)
	}
	return toModelResponse(resp), nil
}

// SubmitToolResult continues the same turn: the model's function call and the
// executed tool's payload are appended to the history and resubmitted for the
// final natural-language answer.
func (c *Client) SubmitToolResult(
	ctx context.Context,
	history []contractx.Turn,
	call contractx.ToolRequest,
	result contractx.ToolResult,
) (contractx.ModelResponse, error) {
	contents := toContents(history)
	contents = append(contents,
		genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromFunctionCall(call.Tool, call.Args)},
			genai.RoleModel,
		),
		genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromFunctionResponse(call.Tool, result.Payload())},
			genai.RoleUser,
		),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.config)
	if err != nil {
		return contractx.ModelResponse{}, classify(err)
	}
	return toModelResponse(resp), nil
}

func toContents(history []contractx.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == contractx.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}

func toModelResponse(resp *genai.GenerateContentResponse) contractx.ModelResponse {
	// Only the first function call is honored; multi-call turns are out of
	// the supported protocol.
	if calls := resp.FunctionCalls(); len(calls) > 0 {
		return contractx.ModelResponse{
			ToolCall: &contractx.ToolRequest{Tool: calls[0].Name, Args: calls[0].Args},
		}
	}
	return contractx.ModelResponse{Text: resp.Text()}
}

// classify maps upstream failures onto the contract taxonomy: 429 is the
// only retryable class.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", contractx.ErrRateLimited, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
}
