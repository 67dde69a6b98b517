// File: services/planner/openaiBackend.go
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"voyago/config"
	"voyago/models"
	"voyago/services/mcptool"
)

// OpenAIBackend plans through the chat-completions tool-calling loop: the
// model decides which tools to call and in what order; this backend only
// executes the calls it asks for and feeds the results back.
type OpenAIBackend struct {
	client    openai.Client
	model     string
	maxRounds int
	search    *SearchClient
	logger    *zap.Logger
}

func NewOpenAIBackend(cfg *config.Config, logger *zap.Logger) *OpenAIBackend {
	return &OpenAIBackend{
		client:    openai.NewClient(option.WithAPIKey(cfg.OpenAIKey)),
		model:     cfg.OpenAIModel,
		maxRounds: cfg.MaxToolRounds,
		search:    NewSearchClient(cfg.SerpAPIKey),
		logger:    logger,
	}
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Plan(ctx context.Context, req models.TripRequest, pool *mcptool.Pool) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		openai.UserMessage(userPrompt(req, pool.Names())),
	}
	tools := b.toolParams(pool)

	for round := 0; round < b.maxRounds; round++ {
		params := openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(b.model),
			Messages: messages,
		}
		if len(tools) > 0 {
			params.Tools = tools
		}

		completion, err := b.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("openai completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", models.IncompleteResultError{Reason: "model returned no choices"}
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			b.logger.Debug("Executing tool call",
				zap.String("tool", call.Function.Name), zap.Int("round", round))
			result := b.dispatch(ctx, pool, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ToolMessage(result, call.ID))
		}
	}

	return "", models.IncompleteResultError{
		Reason: fmt.Sprintf("tool-call budget of %d rounds exhausted without a final itinerary", b.maxRounds),
	}
}

func (b *OpenAIBackend) toolParams(pool *mcptool.Pool) []openai.ChatCompletionToolParam {
	var out []openai.ChatCompletionToolParam
	for _, t := range pool.Tools() {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.InputSchema),
			},
		})
	}
	if b.search.Enabled() {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        webSearchToolName,
				Description: openai.String("Search the web for current travel information, reviews, and updates."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{"type": "string", "description": "search query"},
					},
					"required": []string{"query"},
				},
			},
		})
	}
	return out
}

// dispatch executes one tool call and always returns text for the model:
// failures come back as an error payload so the run can continue degraded.
func (b *OpenAIBackend) dispatch(ctx context.Context, pool *mcptool.Pool, name, rawArgs string) string {
	var args map[string]any
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return toolErrorPayload(fmt.Errorf("bad arguments: %w", err))
		}
	}

	if name == webSearchToolName {
		query, _ := args["query"].(string)
		result, err := b.search.Search(ctx, query)
		if err != nil {
			b.logger.Warn("Web search failed", zap.Error(err))
			return toolErrorPayload(err)
		}
		return result
	}

	result, err := pool.Call(ctx, name, args)
	if err != nil {
		b.logger.Warn("Tool call failed", zap.String("tool", name), zap.Error(err))
		return toolErrorPayload(err)
	}
	return result
}

func toolErrorPayload(err error) string {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(payload)
}
