package feedback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mwelte/undo/internal/catalog"
)

// DefaultModel is the chat model used for feedback generation.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You write short reflective feedback for a journaling app.
Style: two brief paragraphs of flowing prose, then one closing line starting
with "Impulse:". No lists, no emojis, no coaching jargon. Warm but sober.
Weave the user's motive and outlook in softly when given. Match the time of
day: gently activating in the morning, settling in the evening.`

// OpenAIConfig configures the AI feedback provider.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: gpt-4o-mini
	BaseURL string // optional, for OpenAI-compatible APIs
}

// OpenAIProvider generates feedback with the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai/" + p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(req)},
		},
		MaxCompletionTokens: 300,
		Temperature:         0.7,
	})
	if err != nil {
		return "", mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ErrEmptyResponse{}
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", &ErrEmptyResponse{}
	}
	return out, nil
}

func buildUserPrompt(req Request) string {
	var b strings.Builder
	if req.Question != nil {
		fmt.Fprintf(&b, "Question: %s\n", req.Question.Text)
	}
	fmt.Fprintf(&b, "Answer: %s\n", req.Answer)
	if req.Motive != "" {
		fmt.Fprintf(&b, "Motive: %s\n", req.Motive)
	}
	if req.Outlook != "" {
		fmt.Fprintf(&b, "Outlook: %s\n", req.Outlook)
	}
	if req.Mode == catalog.ModeMorning || req.Mode == catalog.ModeEvening {
		fmt.Fprintf(&b, "Time of day: %s\n", req.Mode)
	}
	return b.String()
}

// mapOpenAIError converts SDK errors to the package's typed errors.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrUnavailable{Err: err}
		}
	}
	return err
}
