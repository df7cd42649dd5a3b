package editor

import (
	"context"
	"fmt"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ovyshniak/redline/internal/postprocess"
)

// DefaultOpenAIModel is used when neither the CLI nor the environment
// overrides the model name.
const DefaultOpenAIModel = "gpt-4o"

type OpenAIService struct {
	apiKey string
	model  string
	client openai.Client
}

func NewOpenAIService(apiKey, model, baseURL string) *OpenAIService {
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIService{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(opts...),
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Edit(ctx context.Context, cfg ServiceConfig, req EditRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if s.apiKey == "" && cfg.APIKey == "" {
		result.Error = "OpenAI API key required"
		return result, fmt.Errorf("OpenAI API key required")
	}

	model := s.model
	if cfg.Model != "" {
		model = cfg.Model
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(Instructions(req.Granularity)),
			openai.UserMessage(req.Text),
		},
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, err
	}

	if len(resp.Choices) == 0 {
		result.Error = "empty response from API"
		return result, fmt.Errorf("empty response from API")
	}

	edited := postprocess.Clean(resp.Choices[0].Message.Content)
	result.EditedText = postprocess.CollapseTrailingRuns(edited)
	result.Metadata = map[string]string{
		"model":             model,
		"prompt_tokens":     fmt.Sprintf("%d", resp.Usage.PromptTokens),
		"completion_tokens": fmt.Sprintf("%d", resp.Usage.CompletionTokens),
	}

	return result, nil
}

func (s *OpenAIService) IsAvailable(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
