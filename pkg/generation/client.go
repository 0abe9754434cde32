package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/samber/oops"
)

type Settings struct {
	APIKey        string
	BaseURL       string
	Model         string
	FallbackModel string
	// PromptID references a managed prompt for the primary call shape; optional.
	PromptID      string
	PromptVersion string
	MaxRetries    int
}

// Client calls the Responses API first and falls back to Chat Completions.
type Client struct {
	client        openai.Client
	model         string
	fallbackModel string
	promptID      string
	promptVersion string
}

func NewClient(s Settings, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(s.MaxRetries),
	}
	if s.BaseURL != "" {
		base = append(base, option.WithBaseURL(s.BaseURL))
	}

	fallbackModel := s.FallbackModel
	if fallbackModel == "" {
		fallbackModel = s.Model
	}

	return &Client{
		client:        openai.NewClient(append(base, opts...)...),
		model:         s.Model,
		fallbackModel: fallbackModel,
		promptID:      s.PromptID,
		promptVersion: s.PromptVersion,
	}
}

// Invoke returns the result of the first call shape that succeeds. A
// successful call without text is not a failure: the Result reports absence.
func (c *Client) Invoke(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	result, primaryErr := c.invokePrimary(ctx, req)
	if primaryErr == nil {
		return result, nil
	}

	slog.Warn("Primary call shape failed, falling back to chat completions",
		"model", c.model,
		"took", time.Since(start),
		"error", primaryErr,
	)

	start = time.Now()
	result, fallbackErr := c.invokeFallback(ctx, req)
	if fallbackErr == nil {
		return result, nil
	}

	backendErr := newBackendError(primaryErr, fallbackErr)
	return nil, oops.
		Code("backend_unavailable").
		With("status", backendErr.Status, "code", backendErr.Code, "took", time.Since(start)).
		Wrap(backendErr)
}

func (c *Client) invokePrimary(ctx context.Context, req Request) (Result, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(c.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Input),
		},
		Instructions:    openai.String(req.Instructions),
		MaxOutputTokens: openai.Int(req.MaxOutputTokens),
		Temperature:     openai.Float(req.Temperature),
	}
	if c.promptID != "" {
		params.Prompt = responses.ResponsePromptParam{ID: c.promptID}
		if c.promptVersion != "" {
			params.Prompt.Version = openai.String(c.promptVersion)
		}
	}

	start := time.Now()
	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, err
	}

	slog.Info("Responses call succeeded",
		"model", c.model,
		"mode", req.Mode.String(),
		"took", time.Since(start),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return PrimaryShapeResult{OutputText: resp.OutputText()}, nil
}

func (c *Client) invokeFallback(ctx context.Context, req Request) (Result, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.fallbackModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.Input),
		},
		MaxTokens:   openai.Int(req.MaxOutputTokens),
		Temperature: openai.Float(req.Temperature),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}

	slog.Info("Chat completion succeeded",
		"model", c.fallbackModel,
		"mode", req.Mode.String(),
		"took", time.Since(start),
		"input_tokens", resp.Usage.PromptTokens,
		"output_tokens", resp.Usage.CompletionTokens,
	)

	if len(resp.Choices) == 0 {
		return FallbackShapeResult{}, nil
	}
	return FallbackShapeResult{ChoiceContent: resp.Choices[0].Message.Content}, nil
}
