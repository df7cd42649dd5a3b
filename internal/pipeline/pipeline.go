// Package pipeline walks a document's paragraphs in order and applies the
// copy-editing pass: section-range classification, sentence segmentation,
// eligibility filtering, the editing service chain, and reassembly. The
// walk is strictly single-threaded; each service call blocks the run until
// it returns or fails.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ovyshniak/redline/internal"
	"github.com/ovyshniak/redline/internal/docx"
	"github.com/ovyshniak/redline/internal/editor"
	"github.com/ovyshniak/redline/internal/eligibility"
	"github.com/ovyshniak/redline/internal/orchestrator"
	"github.com/ovyshniak/redline/internal/sections"
	"github.com/ovyshniak/redline/internal/segment"
	"github.com/ovyshniak/redline/internal/store"
)

type Config struct {
	Granularity  editor.Granularity
	MinWords     int
	Model        string
	EditAbstract bool
	Service      editor.ServiceConfig
	Quiet        bool
}

type Stats struct {
	Paragraphs int // paragraphs edited
	Segments   int // segments sent to a service
	Skipped    int // segments ruled ineligible
	Failed     int // segments left unchanged after service failure
	CacheHits  int
}

type Pipeline struct {
	orch       *orchestrator.Orchestrator
	classifier sections.Classifier
	db         *store.Store // nil disables the edit memory
	cfg        Config
}

func New(orch *orchestrator.Orchestrator, classifier sections.Classifier, db *store.Store, cfg Config) *Pipeline {
	if cfg.Granularity == "" {
		cfg.Granularity = editor.GranularitySentence
	}
	return &Pipeline{orch: orch, classifier: classifier, db: db, cfg: cfg}
}

// Run edits doc in place and returns the run statistics. Only startup-class
// problems surface as errors; per-segment service failures degrade to the
// original text.
func (p *Pipeline) Run(ctx context.Context, doc *docx.Document) (*Stats, error) {
	walker := sections.NewWalker(p.classifier, p.cfg.EditAbstract)
	stats := &Stats{}

	for _, para := range doc.Paragraphs() {
		raw := strings.TrimSpace(para.Text())

		action := walker.Next(raw)
		if action == sections.ActionStop {
			p.logf("Stopping at %q\n", raw)
			break
		}
		if action == sections.ActionSkip {
			continue
		}

		var edited string
		if p.cfg.Granularity == editor.GranularityParagraph {
			edited = p.editWholeParagraph(ctx, raw, stats)
		} else {
			edited = p.editSentencewise(ctx, raw, stats)
		}

		para.SetText(edited)
		stats.Paragraphs++
		p.logf("Processed paragraph %d\n", stats.Paragraphs)
	}

	return stats, nil
}

// editSentencewise splits a paragraph into sentences, edits each eligible
// one, and reassembles. Paragraphs without a single period pass through.
func (p *Pipeline) editSentencewise(ctx context.Context, text string, stats *Stats) string {
	if strings.Count(text, ".") < 1 {
		return text
	}

	parts := segment.Split(text)
	edited := make([]string, 0, len(parts))

	for i := 0; i < len(parts); i += 2 {
		chunk := strings.TrimSpace(parts[i])
		punctuation := ""
		if i+1 < len(parts) {
			punctuation = parts[i+1]
		}
		if chunk == "" {
			continue
		}

		if ok, _ := eligibility.Check(chunk, p.cfg.MinWords); !ok {
			stats.Skipped++
			edited = append(edited, chunk, punctuation)
			continue
		}

		edited = append(edited, p.editOne(ctx, chunk, stats), punctuation)
	}

	return segment.Reassemble(edited)
}

// editWholeParagraph sends the paragraph as a single unit. The citation
// filter does not apply at this granularity — nearly every academic
// paragraph carries a citation somewhere — so citation preservation rests
// on the instruction payload alone.
func (p *Pipeline) editWholeParagraph(ctx context.Context, text string, stats *Stats) string {
	if len(strings.Fields(text)) < p.minWords() {
		stats.Skipped++
		return text
	}
	return p.editOne(ctx, text, stats)
}

// editOne resolves one segment: cache, then the service chain, fail-open.
func (p *Pipeline) editOne(ctx context.Context, text string, stats *Stats) string {
	if p.db != nil {
		if cached, found, err := p.db.GetCachedEdit(ctx, text, p.cfg.Model, string(p.cfg.Granularity)); err == nil && found {
			stats.CacheHits++
			return cached
		}
	}

	stats.Segments++
	result := p.orch.Execute(ctx, p.cfg.Service, editor.EditRequest{
		Text:        text,
		Granularity: p.cfg.Granularity,
	})

	if result.Unchanged {
		stats.Failed++
		for _, err := range result.Errors {
			fmt.Fprintf(os.Stderr, "Edit failed, keeping original text: %v\n", err)
		}
		return text
	}

	p.record(ctx, text, result)
	return result.Text
}

// record persists the request, result, and memory entry. Storage failures
// are deliberately ignored: the cache is an optimisation, not a dependency.
func (p *Pipeline) record(ctx context.Context, text string, result *orchestrator.Result) {
	if p.db == nil {
		return
	}

	reqID := uuid.New().String()
	_ = p.db.SaveRequest(ctx, internal.EditRequest{
		ID:          reqID,
		SourceText:  text,
		Model:       p.cfg.Model,
		Granularity: string(p.cfg.Granularity),
		Timestamp:   time.Now(),
	})
	_ = p.db.SaveResult(ctx, reqID, result.ServiceName, result.Text, int(result.Latency.Milliseconds()), "")
	_ = p.db.SaveToMemory(ctx, text, p.cfg.Model, string(p.cfg.Granularity), result.Text, result.ServiceName)
}

func (p *Pipeline) minWords() int {
	if p.cfg.MinWords > 0 {
		return p.cfg.MinWords
	}
	return eligibility.DefaultMinWords
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
