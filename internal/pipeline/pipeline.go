// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the three-stage debiasing run: an initial
// diagnosis from the full case, an independent history-blind diagnosis with
// a deterministic overlap assessment, and a final synthesis of both. The
// first two stages fan out concurrently; the third joins them.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nglebm19/debias-llm/internal/generate"
	"github.com/nglebm19/debias-llm/internal/overlap"
	"github.com/nglebm19/debias-llm/pkg/types"
)

// Runner executes pipelines against one shared adapter. It holds no
// per-run state; a single Runner may serve concurrent Run calls.
type Runner struct {
	adapter *generate.Adapter
	scorer  overlap.Scorer
	cfg     types.GenerationConfig
}

// New builds a Runner. A nil scorer selects the default lexical scorer.
func New(adapter *generate.Adapter, scorer overlap.Scorer, cfg types.GenerationConfig) *Runner {
	if scorer == nil {
		scorer = overlap.LexicalScorer{}
	}
	return &Runner{
		adapter: adapter,
		scorer:  scorer,
		cfg:     cfg.WithDefaults(),
	}
}

// Run executes the full pipeline for one case. Validation failures surface
// before any generation call; after that, the only errors a caller can see
// are cancellation and, in strict mode, adapter failures. In the default
// mode every valid case yields a complete PipelineResult, with degraded
// stages flagged rather than dropped.
//
// The diagnostician and advocate stages run concurrently; cancelling ctx
// cancels both promptly. The synthesizer starts only after both have a
// complete or fallback outcome.
func (r *Runner) Run(ctx context.Context, c types.MedicalCase) (*types.PipelineResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		diag types.StageOutput
		adv  types.StageOutput
		ov   types.OverlapAssessment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		diag, err = r.runDiagnostician(gctx, c)
		return err
	})
	g.Go(func() error {
		var err error
		adv, ov, err = r.runAdvocate(gctx, c)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	syn, err := r.runSynthesizer(ctx, c, diag, adv, ov)
	if err != nil {
		return nil, err
	}

	return &types.PipelineResult{
		Case:          c,
		Diagnostician: diag,
		Advocate:      adv,
		Synthesis:     syn,
		Overlap:       ov,
	}, nil
}
