package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const condensePrompt = `You are a film script analyst. Condense the following
script text into its structural elements: scene headings with locations and
time of day, the characters appearing in each scene, and a short description
of the action. Preserve scene order and scene numbering. Respond with plain
text, one scene per paragraph.

SCRIPT TEXT:
%s`

const analysisPrompt = `You are a film script analyst. Produce a comprehensive
analysis of the condensed script below as a single JSON object with exactly
these fields:

{
  "title": string,
  "logline": string,
  "genre": string,
  "total_scenes": number,
  "total_characters": number,
  "estimated_budget": number (USD),
  "budget_category": "low" | "medium" | "high" | "blockbuster",
  "scenes": [{"scene_number": number, "location": string, "time_of_day": string, "description": string, "characters": [string]}],
  "cast_breakdown": [{"name": string, "role": string, "scene_count": number}],
  "locations": [string],
  "themes": [string],
  "summary": string
}

Respond with only the JSON object.

CONDENSED SCRIPT:
%s`

type openAIAnalyzer struct {
	client      *openai.Client
	model       string
	temperature float64
	logger      *slog.Logger
}

// NewOpenAI creates an OpenAI-backed Analyzer from the given configuration.
func NewOpenAI(cfg *Config, logger *slog.Logger) (Analyzer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &openAIAnalyzer{
		client:      &client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger.With("system", "agent"),
	}, nil
}

// Analyze extracts the script text locally, then performs the analysis in
// two chat completions: condense the script into structural elements, then
// produce the structured analysis payload.
func (a *openAIAnalyzer) Analyze(ctx context.Context, pdfPath string) (*Analysis, error) {
	text, err := ExtractText(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	a.logger.Info("script text extracted", "path", pdfPath, "chars", len(text))

	condensed, err := a.complete(ctx, fmt.Sprintf(condensePrompt, text), false)
	if err != nil {
		return nil, fmt.Errorf("%w: condense: %w", ErrAnalysis, err)
	}

	content, err := a.complete(ctx, fmt.Sprintf(analysisPrompt, condensed), true)
	if err != nil {
		return nil, fmt.Errorf("%w: analyze: %w", ErrAnalysis, err)
	}

	analysis, err := Normalize(content)
	if err != nil {
		return nil, err
	}

	a.logger.Info(
		"script analysis complete",
		"title", analysis.Title,
		"scenes", analysis.TotalScenes,
	)

	return analysis, nil
}

func (a *openAIAnalyzer) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(a.temperature),
	}

	if jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: openai.Ptr(shared.NewResponseFormatJSONObjectParam()),
		}
	}

	completion, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return completion.Choices[0].Message.Content, nil
}
