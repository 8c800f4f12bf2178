// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate wraps a text-generation backend behind a policy layer:
// per-call timeouts, a single shortened retry, a concurrency ceiling, and
// deterministic topic-matched fallback templates for when the backend cannot
// produce output. Callers see either generated text or a flagged fallback;
// only strict mode surfaces backend failures directly.
package generate

import (
	"context"
	"errors"
)

// Failure taxonomy for generation calls. All adapter errors wrap one of
// these sentinels so callers can match with errors.Is.
var (
	// ErrBackendUnavailable reports that the backend failed to initialize.
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrGenerationTimeout reports that a call exceeded the configured
	// wall-clock ceiling.
	ErrGenerationTimeout = errors.New("generation timeout")

	// ErrGenerationError reports a backend-internal fault, including
	// unusable (empty) completions.
	ErrGenerationError = errors.New("generation error")
)

// Options control a single generation call.
type Options struct {
	// MaxTokens is the completion budget. The adapter clamps it to the
	// configured ceiling.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64

	// StopSequences stop the completion when produced by the backend.
	StopSequences []string

	// FallbackText, when non-empty, replaces keyword-based template
	// selection for this call. The synthesizer stage uses this so its
	// degraded output still echoes the upstream diagnoses.
	FallbackText string
}

// Backend produces text for a prompt. Implementations must be safe for
// concurrent use; tests supply mocks. A backend with a one-time setup cost
// additionally implements Initializer.
type Backend interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Initializer is implemented by backends that perform one-time setup (for
// example, verifying credentials or loading a local model). The adapter
// invokes Init exactly once, before the first generation call; a failure
// latches the adapter into the backend-unavailable state.
type Initializer interface {
	Init(ctx context.Context) error
}
