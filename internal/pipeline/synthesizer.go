// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/nglebm19/debias-llm/internal/generate"
	"github.com/nglebm19/debias-llm/pkg/types"
)

// synthesisLabels are the sections the synthesizer stage instructs the
// backend to produce.
var synthesisLabels = []sectionLabel{
	{label: "Final Diagnosis", key: types.FieldFinalDiagnosis},
	{label: "Differential", key: types.FieldDifferential},
	{label: "Impact of Past History", key: types.FieldHistoryImpact},
	{label: "Next Steps", key: types.FieldNextSteps},
}

// runSynthesizer executes stage 3: the join. It never fails the pipeline on
// backend trouble; its fallback is built from the upstream outputs so even a
// fully degraded run still reports both diagnoses and the overlap verdict.
func (r *Runner) runSynthesizer(ctx context.Context, c types.MedicalCase, diag, adv types.StageOutput, ov types.OverlapAssessment) (types.StageOutput, error) {
	data := synthesizerData{
		InitialDiagnosis:     diag.Field(types.FieldDiagnosis),
		IndependentDiagnosis: adv.Field(types.FieldDiagnosis),
		OverlapScore:         ov.Score,
		OverlapRationale:     ov.Rationale,
		PMH:                  c.PMH,
	}

	prompt, err := renderPrompt(synthesizerTmpl, data)
	if err != nil {
		return types.StageOutput{}, fmt.Errorf("rendering synthesizer prompt: %w", err)
	}

	opts := r.opts()
	opts.FallbackText = synthesisFallback(data)

	res, err := r.adapter.Generate(ctx, prompt, opts)
	if err != nil {
		return types.StageOutput{}, fmt.Errorf("synthesizer stage: %w", err)
	}

	return types.StageOutput{
		Stage:        types.StageSynthesizer,
		RawText:      res.Text,
		Fields:       parseSynthesis(res.Text),
		UsedFallback: res.UsedFallback,
	}, nil
}

// parseSynthesis extracts the four synthesis sections, defaulting any the
// backend skipped to the explicit not-provided marker.
func parseSynthesis(text string) map[string]string {
	fields := parseSections(text, synthesisLabels)
	for _, l := range synthesisLabels {
		if fields[l.key] == "" {
			fields[l.key] = types.NotProvided
		}
	}
	return fields
}

// synthesisFallback builds the stage's templated degraded output. It echoes
// both upstream diagnoses verbatim and states the overlap verdict, keeping
// the informational core of the run intact without any generation.
func synthesisFallback(data synthesizerData) string {
	return fmt.Sprintf(`Final Diagnosis: The initial assessment remains the working diagnosis: %s
Differential: The independent review suggested: %s
Impact of Past History: Overlap between the independent diagnosis and the past history is %s. %s
Next Steps: Reconcile the two assessments against objective findings before committing to either.`,
		data.InitialDiagnosis, data.IndependentDiagnosis, data.OverlapScore, data.OverlapRationale)
}

// opts returns the per-stage generation options derived from config.
func (r *Runner) opts() generate.Options {
	return generate.Options{
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}
}
