// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// Result is the outcome of an adapter call.
type Result struct {
	// Text is the generated completion, or a fallback template when
	// UsedFallback is true.
	Text string

	// UsedFallback marks degraded output. It is never hidden: the stage
	// output carries it through to the pipeline result.
	UsedFallback bool
}

// Adapter applies generation policy around a Backend. One adapter instance
// may serve concurrent pipeline invocations; backend initialization happens
// once, lazily, and in-flight calls are bounded by the configured ceiling to
// limit backend memory pressure.
type Adapter struct {
	cfg     types.GenerationConfig
	backend Backend

	initOnce sync.Once
	initErr  error
	sem      chan struct{}
}

// NewAdapter wraps backend with the policy described by cfg. Zero config
// fields take defaults.
func NewAdapter(cfg types.GenerationConfig, backend Backend) *Adapter {
	cfg = cfg.WithDefaults()
	return &Adapter{
		cfg:     cfg,
		backend: backend,
		sem:     make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Generate runs one generation call under the adapter's policy: lazy
// one-time init, concurrency ceiling, per-call timeout, and one retry with a
// halved token budget. On failure the default mode substitutes a fallback
// template and reports UsedFallback; strict mode propagates the classified
// error instead. Cancellation of ctx always propagates, never falls back.
func (a *Adapter) Generate(ctx context.Context, prompt string, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(prompt) == "" {
		return Result{}, fmt.Errorf("%w: empty prompt", ErrGenerationError)
	}
	opts = a.fillOptions(opts)

	if err := a.ensureInit(ctx); err != nil {
		return a.recover(ctx, prompt, opts, err)
	}

	select {
	case a.sem <- struct{}{}:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	defer func() { <-a.sem }()

	text, err := a.call(ctx, prompt, opts)
	if err != nil && ctx.Err() == nil {
		// One retry with a shorter token budget before giving up.
		retryOpts := opts
		retryOpts.MaxTokens = max(1, opts.MaxTokens/2)
		text, err = a.call(ctx, prompt, retryOpts)
	}
	if err != nil {
		return a.recover(ctx, prompt, opts, err)
	}
	return Result{Text: text}, nil
}

// call performs a single backend invocation bounded by the configured
// timeout and classifies any failure into the adapter taxonomy.
func (a *Adapter) call(ctx context.Context, prompt string, opts Options) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	text, err := a.backend.Generate(callCtx, prompt, opts)
	if err != nil {
		return "", classify(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationError)
	}
	return text, nil
}

// ensureInit runs the backend's one-time initialization. Safe to trigger
// from concurrent invocations; a failure latches and every subsequent call
// observes ErrBackendUnavailable.
func (a *Adapter) ensureInit(ctx context.Context) error {
	a.initOnce.Do(func() {
		in, ok := a.backend.(Initializer)
		if !ok {
			return
		}
		if err := in.Init(ctx); err != nil {
			a.initErr = fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
	})
	return a.initErr
}

// recover applies the failure policy: propagate on cancellation or in
// strict mode, otherwise substitute a fallback template.
func (a *Adapter) recover(ctx context.Context, prompt string, opts Options, err error) (Result, error) {
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if a.cfg.Strict {
		return Result{}, err
	}
	text := opts.FallbackText
	if text == "" {
		text = fallbackFor(prompt)
	}
	return Result{Text: text, UsedFallback: true}, nil
}

// fillOptions applies config defaults and clamps the token budget.
func (a *Adapter) fillOptions(opts Options) Options {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = a.cfg.MaxTokens
	}
	if opts.MaxTokens > a.cfg.MaxTokenCeiling {
		opts.MaxTokens = a.cfg.MaxTokenCeiling
	}
	if opts.Temperature <= 0 {
		opts.Temperature = a.cfg.Temperature
	}
	return opts
}

// classify maps backend errors onto the adapter taxonomy. Errors already in
// the taxonomy pass through; deadline expiry becomes a generation timeout.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrBackendUnavailable),
		errors.Is(err, ErrGenerationTimeout),
		errors.Is(err, ErrGenerationError):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrGenerationError, err)
	}
}
