package gateway

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/agencyhub/agencyhub/internal/domain"
)

// CompletionGateway talks to an OpenAI-compatible chat completion endpoint.
type CompletionGateway struct {
	client      openai.Client
	model       string
	visionModel string
}

func NewCompletionGateway(apiKey, baseURL, model, visionModel string) *CompletionGateway {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if visionModel == "" {
		visionModel = model
	}
	return &CompletionGateway{
		client:      openai.NewClient(opts...),
		model:       model,
		visionModel: visionModel,
	}
}

func toMessages(req domain.CompletionRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}

	last := len(req.Messages) - 1
	for i, turn := range req.Messages {
		switch turn.Role {
		case domain.ChatRoleSystem:
			messages = append(messages, openai.SystemMessage(turn.Content))
		case domain.ChatRoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			if i == last && req.ImageURL != "" {
				messages = append(messages, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
					openai.TextContentPart(turn.Content),
					openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: req.ImageURL}),
				}))
				continue
			}
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	return messages
}

func (g *CompletionGateway) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "Completion.Gateway.Complete")
	defer span.End()

	model := g.model
	if req.ImageURL != "" {
		model = g.visionModel
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toMessages(req),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
