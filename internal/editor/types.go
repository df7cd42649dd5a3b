package editor

import (
	"context"
	"time"
)

// Granularity selects what unit of text a single service call covers.
type Granularity string

const (
	// GranularitySentence sends one request per eligible sentence.
	GranularitySentence Granularity = "sentence"
	// GranularityParagraph sends one request per eligible paragraph.
	GranularityParagraph Granularity = "paragraph"
)

type ServiceConfig struct {
	APIKey  string        `mapstructure:"api_key" json:"api_key"`
	Model   string        `mapstructure:"model" json:"model"`
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

type EditRequest struct {
	Text        string      `json:"text"`
	Granularity Granularity `json:"granularity"`
}

type ServiceResult struct {
	ServiceName string            `json:"service_name"`
	EditedText  string            `json:"edited_text"`
	Metadata    map[string]string `json:"metadata"`
	Latency     time.Duration     `json:"latency"`
	Error       string            `json:"error,omitempty"`
}

// Service is a text-correction backend. Edit returns the corrected text for
// one sentence or paragraph; a failed call reports the failure in both the
// error and the result's Error field so callers can fall back to the
// original text.
type Service interface {
	Name() string
	Edit(ctx context.Context, cfg ServiceConfig, req EditRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
}
