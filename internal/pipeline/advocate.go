// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// runAdvocate executes stage 2: an independent diagnosis from the current
// presentation only, then the deterministic overlap assessment of that
// diagnosis against the withheld past medical history. The overlap scoring
// happens inside the stage, after generation and before the join, so the
// synthesizer always receives a complete bias signal.
func (r *Runner) runAdvocate(ctx context.Context, c types.MedicalCase) (types.StageOutput, types.OverlapAssessment, error) {
	prompt, err := renderPrompt(advocateTmpl, advocateData{
		HPI:          c.HPI,
		PhysicalExam: c.PhysicalExam,
	})
	if err != nil {
		return types.StageOutput{}, types.OverlapAssessment{}, fmt.Errorf("rendering advocate prompt: %w", err)
	}

	res, err := r.adapter.Generate(ctx, prompt, r.opts())
	if err != nil {
		return types.StageOutput{}, types.OverlapAssessment{}, fmt.Errorf("advocate stage: %w", err)
	}

	out := types.StageOutput{
		Stage:        types.StageAdvocate,
		RawText:      res.Text,
		Fields:       parseDiagnosis(res.Text),
		UsedFallback: res.UsedFallback,
	}

	assessment := r.scorer.Score(out.Fields[types.FieldDiagnosis], c.PMH)
	return out, assessment, nil
}
