package internal

import "time"

type EditRequest struct {
	ID          string    `json:"id"`
	SourceText  string    `json:"source_text"`
	Model       string    `json:"model"`
	Granularity string    `json:"granularity"`
	Timestamp   time.Time `json:"timestamp"`
}
