package editor

import (
	"context"
	"fmt"
	"time"

	genai "google.golang.org/genai"

	"github.com/ovyshniak/redline/internal/postprocess"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiService struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiService builds the Gemini backend. The client handshake needs a
// context; construction fails when the key is missing or rejected.
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{apiKey: apiKey, model: model, client: client}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Edit(ctx context.Context, cfg ServiceConfig, req EditRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	model := s.model
	if cfg.Model != "" {
		model = cfg.Model
	}

	temperature := float32(0.1)
	resp, err := s.client.Models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromText(req.Text, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Instructions(req.Granularity), genai.RoleUser),
		Temperature:       &temperature,
	})
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result, err
	}

	text := resp.Text()
	if text == "" {
		result.Error = "empty response from API"
		return result, fmt.Errorf("empty response from API")
	}

	edited := postprocess.Clean(text)
	result.EditedText = postprocess.CollapseTrailingRuns(edited)
	result.Metadata = map[string]string{"model": model}

	return result, nil
}

func (s *GeminiService) IsAvailable(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("Gemini client not configured")
	}
	return nil
}
