package editor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaService_Edit(t *testing.T) {
	var gotReq map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"response": "The experiment was conducted carefully.",
		})
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, []string{"llama3.2"})

	result, err := s.Edit(context.Background(), ServiceConfig{}, EditRequest{
		Text:        "The experimint was conducted carefuly.",
		Granularity: GranularitySentence,
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if result.EditedText != "The experiment was conducted carefully." {
		t.Errorf("EditedText = %q", result.EditedText)
	}
	if result.ServiceName != "ollama" {
		t.Errorf("ServiceName = %q", result.ServiceName)
	}
	if result.Metadata["model"] != "llama3.2" {
		t.Errorf("model metadata = %q", result.Metadata["model"])
	}

	if gotReq["model"] != "llama3.2" {
		t.Errorf("request model = %v", gotReq["model"])
	}
	if gotReq["stream"] != false {
		t.Errorf("request stream = %v", gotReq["stream"])
	}
	opts, _ := gotReq["options"].(map[string]interface{})
	if opts["temperature"] != 0.1 {
		t.Errorf("request temperature = %v", opts["temperature"])
	}
}

func TestOllamaService_Edit_CleansArtifacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"response": "<thinking>fixing grammar</thinking>Here's the corrected sentence: \"All good now.\"",
		})
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, []string{"llama3.2"})

	result, err := s.Edit(context.Background(), ServiceConfig{}, EditRequest{
		Text:        "All good now",
		Granularity: GranularitySentence,
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if result.EditedText != "All good now." {
		t.Errorf("EditedText = %q", result.EditedText)
	}
}

func TestOllamaService_Edit_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, nil)

	result, err := s.Edit(context.Background(), ServiceConfig{}, EditRequest{
		Text:        "Some text here",
		Granularity: GranularitySentence,
	})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if result.Error == "" {
		t.Error("expected result.Error to be set")
	}
}

func TestOllamaService_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewOllamaService(server.URL, nil)
	if err := s.IsAvailable(context.Background()); err != nil {
		t.Errorf("IsAvailable failed: %v", err)
	}
}

func TestOllamaService_IsAvailable_Down(t *testing.T) {
	s := NewOllamaService("http://127.0.0.1:1", nil)
	if err := s.IsAvailable(context.Background()); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestOllamaService_Defaults(t *testing.T) {
	s := NewOllamaService("", nil)
	if s.baseURL != "http://localhost:11434" {
		t.Errorf("baseURL = %q", s.baseURL)
	}
	if len(s.GetModels()) == 0 {
		t.Error("expected default model list")
	}
}
