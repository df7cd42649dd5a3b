/*
Copyright © 2026 Oleh Vyshniak <oleh.vyshniak@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ovyshniak/redline/internal/editor"
)

// buildServices constructs the list of editing services from CLI parameters.
// A service whose credential is missing fails the run before any document
// processing starts. An empty ollamaModels list falls back to
// editor.DefaultOllamaModels.
func buildServices(ctx context.Context, serviceNames []string, model, ollamaBaseURL string, ollamaModels []string) ([]editor.Service, error) {
	var list []editor.Service

	for _, name := range serviceNames {
		switch name {
		case "openai":
			apiKey := viper.GetString("openai_api_key")
			if apiKey == "" {
				return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY as an environment variable")
			}
			list = append(list, editor.NewOpenAIService(apiKey, model, ""))
		case "gemini":
			apiKey := viper.GetString("gemini_api_key")
			if apiKey == "" {
				return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY as an environment variable")
			}
			svc, err := editor.NewGeminiService(ctx, apiKey, "")
			if err != nil {
				return nil, err
			}
			list = append(list, svc)
		case "ollama":
			list = append(list, editor.NewOllamaService(ollamaBaseURL, ollamaModels))
		default:
			fmt.Fprintf(os.Stderr, "Unknown service: %s, skipping\n", name)
		}
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("no valid services configured")
	}
	return list, nil
}

// removeStaleOutputs deletes leftover output files from a previous run.
// A locked or otherwise undeletable file is a warning, not a failure; the
// stale artifact may persist.
func removeStaleOutputs(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not delete %q (is it open in another program?): %v\n", path, err)
		}
	}
}

// resolveModel applies the precedence: --model flag, then the
// REDLINE_MODEL/GPT_MODEL environment override, then the built-in default.
func resolveModel(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := viper.GetString("model"); env != "" {
		return env
	}
	return editor.DefaultOpenAIModel
}
