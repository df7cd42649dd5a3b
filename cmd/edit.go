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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovyshniak/redline/internal/compare"
	"github.com/ovyshniak/redline/internal/docx"
	"github.com/ovyshniak/redline/internal/editor"
	"github.com/ovyshniak/redline/internal/orchestrator"
	"github.com/ovyshniak/redline/internal/pipeline"
	"github.com/ovyshniak/redline/internal/sections"
	"github.com/ovyshniak/redline/internal/store"
)

var (
	inputFile      string
	outputFile     string
	compareOutFile string

	services     []string
	editModel    string
	granularity  string
	minWords     int
	noAbstract   bool
	startHeads   []string
	stopHeads    []string
	ollamaURL    string
	ollamaModels []string

	dbPath  string
	noCache bool

	noCompare   bool
	editTimeout time.Duration
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Copy-edit one .docx paper",
	Long: `Copy-edit the body text of an academic paper.

Paragraphs between the Introduction and References/Bibliography headings
(plus the first paragraph after the Abstract) are edited; headings and
sentences carrying citation markers are left untouched.

Available services:
  - openai   OpenAI chat completions (requires OPENAI_API_KEY)
  - gemini   Google Gemini (requires GEMINI_API_KEY)
  - ollama   Ollama LLM (self-hosted)

Services form a fallback chain: --services openai,ollama tries OpenAI first
and falls back to Ollama per sentence. A sentence for which every service
fails is kept unchanged.

After saving, a tracked-changes comparison is attempted with the local word
processor; when no automation host is installed that step is skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		removeStaleOutputs(outputFile, compareOutFile)

		if _, err := os.Stat(inputFile); err != nil {
			return fmt.Errorf("input document %q does not exist: %w", inputFile, err)
		}

		ctx := context.Background()
		model := resolveModel(editModel)

		serviceList, err := buildServices(ctx, services, model, ollamaURL, ollamaModels)
		if err != nil {
			return err
		}

		var db *store.Store
		if !noCache && dbPath != "" {
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		doc, err := docx.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input document: %w", err)
		}

		orch := orchestrator.New(serviceList, orchestrator.Config{Timeout: editTimeout})
		classifier := sections.NewRegexClassifier(startHeads, stopHeads)

		pipe := pipeline.New(orch, classifier, db, pipeline.Config{
			Granularity:  editor.Granularity(granularity),
			MinWords:     minWords,
			Model:        model,
			EditAbstract: !noAbstract,
			Service:      editor.ServiceConfig{Model: model},
		})

		stats, err := pipe.Run(ctx, doc)
		if err != nil {
			return err
		}

		if err := doc.Save(outputFile); err != nil {
			return fmt.Errorf("failed to save edited document: %w", err)
		}

		fmt.Printf("Editing complete: %d paragraphs edited, %d segments sent, %d skipped, %d failed, %d cache hits\n",
			stats.Paragraphs, stats.Segments, stats.Skipped, stats.Failed, stats.CacheHits)
		fmt.Printf("Edited document saved to %s\n", outputFile)

		if !noCompare {
			runComparison(ctx, inputFile, outputFile, compareOutFile)
		}
		return nil
	},
}

// runComparison is best-effort: a missing automation host or a failed
// compare is reported and the editing run still counts as a success.
func runComparison(ctx context.Context, original, edited, output string) {
	comparer, err := compare.New()
	if errors.Is(err, compare.ErrUnavailable) {
		fmt.Fprintln(os.Stderr, "Skipping tracked-changes comparison: no word processor automation available")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Skipping tracked-changes comparison: %v\n", err)
		return
	}

	// Automation hosts want absolute paths.
	absOriginal, _ := filepath.Abs(original)
	absEdited, _ := filepath.Abs(edited)
	absOutput, _ := filepath.Abs(output)

	if err := comparer.Compare(ctx, absOriginal, absEdited, absOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Tracked-changes comparison failed: %v\n", err)
		return
	}
	fmt.Printf("Comparison completed. Document saved to: %s\n", output)
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&inputFile, "input", "i", "0_input/paper.docx", "Input document to edit")
	editCmd.Flags().StringVarP(&outputFile, "output", "o", "1_output/edited_paper.docx", "Output path for the edited document")
	editCmd.Flags().StringVar(&compareOutFile, "compare-output", "1_output/trackchanges_paper.docx", "Output path for the tracked-changes comparison")

	editCmd.Flags().StringSliceVar(&services, "services", []string{"openai"}, "Editing services to try in order (comma-separated)")
	editCmd.Flags().StringVarP(&editModel, "model", "m", "", "Model name (default from REDLINE_MODEL/GPT_MODEL, else gpt-4o)")
	editCmd.Flags().StringVar(&granularity, "granularity", "sentence", "Editing unit: sentence or paragraph")
	editCmd.Flags().IntVar(&minWords, "min-words", 3, "Minimum word count for a sentence to be edited")
	editCmd.Flags().BoolVar(&noAbstract, "no-abstract", false, "Do not edit the paragraph following the Abstract heading")
	editCmd.Flags().StringSliceVar(&startHeads, "start-keywords", nil, "Headings that open the editable body (default Introduction)")
	editCmd.Flags().StringSliceVar(&stopHeads, "stop-keywords", nil, "Headings that end the editable body (default References,Bibliography)")
	editCmd.Flags().StringVar(&ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	editCmd.Flags().StringSliceVar(&ollamaModels, "ollama-models", nil, "Ollama models to rotate (default list used if empty)")

	editCmd.Flags().StringVar(&dbPath, "db", "./data/redline.db", "Database path for the edit memory")
	editCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the edit memory cache")

	editCmd.Flags().BoolVar(&noCompare, "no-compare", false, "Skip the tracked-changes comparison step")
	editCmd.Flags().DurationVar(&editTimeout, "timeout", 2*time.Minute, "Timeout per service call")
}
