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
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovyshniak/redline/internal/docx"
	"github.com/ovyshniak/redline/internal/editor"
	"github.com/ovyshniak/redline/internal/orchestrator"
	"github.com/ovyshniak/redline/internal/pipeline"
	"github.com/ovyshniak/redline/internal/sections"
	"github.com/ovyshniak/redline/internal/store"
)

var (
	batchInputDir  string
	batchOutputDir string

	batchServices     []string
	batchModel        string
	batchGranularity  string
	batchMinWords     int
	batchNoAbstract   bool
	batchStartHeads   []string
	batchStopHeads    []string
	batchOllamaURL    string
	batchOllamaModels []string

	batchDBPath   string
	batchNoCache  bool
	batchNoResume bool
	batchTimeout  time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Copy-edit every .docx in a directory",
	Long: `Copy-edit every .docx document in a directory with the same pipeline
as "redline edit", writing results to the output directory under the same
file names.

Progress is checkpointed in the database: when a run over the same
directory pair is interrupted, the next invocation skips files that already
completed. Use --no-resume to force a fresh run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchInputDir == batchOutputDir {
			return fmt.Errorf("input directory and output directory cannot be the same")
		}

		entries, err := os.ReadDir(batchInputDir)
		if err != nil {
			return fmt.Errorf("failed to read input directory: %w", err)
		}

		var files []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".docx") {
				continue
			}
			// Word lock files
			if strings.HasPrefix(name, "~$") {
				continue
			}
			files = append(files, name)
		}
		sort.Strings(files)
		if len(files) == 0 {
			return fmt.Errorf("no .docx files found in %s", batchInputDir)
		}

		ctx := context.Background()
		model := resolveModel(batchModel)

		serviceList, err := buildServices(ctx, batchServices, model, batchOllamaURL, batchOllamaModels)
		if err != nil {
			return err
		}

		db, err := store.New(batchDBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		checkpointID := ""
		if !batchNoResume {
			if id, found, cpErr := db.FindRunningCheckpoint(ctx, batchInputDir, batchOutputDir, model); cpErr == nil && found {
				checkpointID = id
				fmt.Fprintf(os.Stderr, "Resuming checkpoint %s\n", checkpointID)
			}
		}
		if checkpointID == "" {
			checkpointID, err = db.CreateBatchCheckpoint(ctx, batchInputDir, batchOutputDir, model)
			if err != nil {
				return fmt.Errorf("failed to create checkpoint: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Checkpoint: %s\n", checkpointID)
		}

		memory := db
		if batchNoCache {
			memory = nil
		}

		orch := orchestrator.New(serviceList, orchestrator.Config{Timeout: batchTimeout})
		classifier := sections.NewRegexClassifier(batchStartHeads, batchStopHeads)
		cfg := pipeline.Config{
			Granularity:  editor.Granularity(batchGranularity),
			MinWords:     batchMinWords,
			Model:        model,
			EditAbstract: !batchNoAbstract,
			Service:      editor.ServiceConfig{Model: model},
			Quiet:        true,
		}

		edited, failed := 0, 0
		for _, name := range files {
			if done, doneErr := db.FileDone(ctx, checkpointID, name); doneErr == nil && done {
				fmt.Fprintf(os.Stderr, "Skipping %s (already completed)\n", name)
				continue
			}

			if err := editOneFile(ctx, orch, classifier, memory, cfg,
				filepath.Join(batchInputDir, name), filepath.Join(batchOutputDir, name)); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Failed to edit %s: %v\n", name, err)
				_ = db.MarkFile(ctx, checkpointID, name, "error", err.Error())
				continue
			}

			edited++
			fmt.Fprintf(os.Stderr, "Edited %s\n", name)
			_ = db.MarkFile(ctx, checkpointID, name, "done", "")
		}

		if failed == 0 {
			_ = db.CompleteBatchCheckpoint(ctx, checkpointID)
		}

		fmt.Printf("Batch complete: %d edited, %d failed, %d total\n", edited, failed, len(files))
		return nil
	},
}

func editOneFile(ctx context.Context, orch *orchestrator.Orchestrator, classifier sections.Classifier, db *store.Store, cfg pipeline.Config, inputPath, outputPath string) error {
	doc, err := docx.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}

	pipe := pipeline.New(orch, classifier, db, cfg)
	if _, err := pipe.Run(ctx, doc); err != nil {
		return err
	}

	if err := doc.Save(outputPath); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInputDir, "input-dir", "i", "0_input", "Directory containing .docx files to edit")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "1_output", "Directory for edited documents")

	batchCmd.Flags().StringSliceVar(&batchServices, "services", []string{"openai"}, "Editing services to try in order")
	batchCmd.Flags().StringVarP(&batchModel, "model", "m", "", "Model name (default from REDLINE_MODEL/GPT_MODEL, else gpt-4o)")
	batchCmd.Flags().StringVar(&batchGranularity, "granularity", "sentence", "Editing unit: sentence or paragraph")
	batchCmd.Flags().IntVar(&batchMinWords, "min-words", 3, "Minimum word count for a sentence to be edited")
	batchCmd.Flags().BoolVar(&batchNoAbstract, "no-abstract", false, "Do not edit the paragraph following the Abstract heading")
	batchCmd.Flags().StringSliceVar(&batchStartHeads, "start-keywords", nil, "Headings that open the editable body")
	batchCmd.Flags().StringSliceVar(&batchStopHeads, "stop-keywords", nil, "Headings that end the editable body")
	batchCmd.Flags().StringVar(&batchOllamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	batchCmd.Flags().StringSliceVar(&batchOllamaModels, "ollama-models", nil, "Ollama models to rotate")

	batchCmd.Flags().StringVar(&batchDBPath, "db", "./data/redline.db", "Database path for edit memory and checkpoints")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "Disable the edit memory cache (checkpoints still recorded)")
	batchCmd.Flags().BoolVar(&batchNoResume, "no-resume", false, "Ignore unfinished checkpoints and start fresh")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 2*time.Minute, "Timeout per service call")
}
