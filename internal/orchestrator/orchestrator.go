// Package orchestrator runs the configured editing services as a strictly
// sequential fallback chain: one request in flight at a time, services tried
// in order until one returns a usable result. A chain where every service
// fails degrades to "keep the original text" — a failed correction must
// never abort a document run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/ovyshniak/redline/internal/editor"
)

type Config struct {
	// Timeout bounds each individual service call. Zero means no bound
	// beyond what the transport imposes.
	Timeout time.Duration
}

// Result is the fail-open outcome of one chain execution. When Unchanged is
// true no service produced a usable edit and Text holds the original input;
// Errors carries the per-service diagnostics.
type Result struct {
	Text        string
	ServiceName string
	Unchanged   bool
	Latency     time.Duration
	Errors      []error
}

type Orchestrator struct {
	services []editor.Service
	config   Config
}

func New(services []editor.Service, config Config) *Orchestrator {
	return &Orchestrator{
		services: services,
		config:   config,
	}
}

// Execute tries each service in order and returns the first successful
// result. It never returns an error: failures are collected in
// Result.Errors and the original text is carried through unchanged.
func (o *Orchestrator) Execute(ctx context.Context, cfg editor.ServiceConfig, req editor.EditRequest) *Result {
	result := &Result{Text: req.Text, Unchanged: true}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	for _, svc := range o.services {
		res, err := o.callOne(ctx, svc, cfg, req)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", svc.Name(), err))
			continue
		}
		result.Text = res.EditedText
		result.ServiceName = res.ServiceName
		result.Unchanged = false
		return result
	}

	return result
}

func (o *Orchestrator) callOne(ctx context.Context, svc editor.Service, cfg editor.ServiceConfig, req editor.EditRequest) (*editor.ServiceResult, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	res, err := svc.Edit(ctx, cfg, req)
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("%s", res.Error)
	}
	return res, nil
}
