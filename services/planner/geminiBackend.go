// File: services/planner/geminiBackend.go
package planner

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"voyago/config"
	"voyago/models"
	"voyago/services/mcptool"
)

// GeminiBackend plans in a single generation pass. It does not drive the
// tool servers itself; the connected tool names are inlined into the prompt
// as context and the model plans from its own knowledge.
type GeminiBackend struct {
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewGeminiBackend(cfg *config.Config, logger *zap.Logger) (*GeminiBackend, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	return &GeminiBackend{model: model, logger: logger}, nil
}

func (g *GeminiBackend) Name() string { return "gemini" }

func (g *GeminiBackend) Plan(ctx context.Context, req models.TripRequest, pool *mcptool.Pool) (string, error) {
	prompt := systemPrompt + "\n\n" + userPrompt(req, pool.Names())

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", models.IncompleteResultError{Reason: "gemini returned no candidates"}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
