// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// diagnosisLabels are the sections the diagnostician and advocate stages
// instruct the backend to produce.
var diagnosisLabels = []sectionLabel{
	{label: "Diagnosis", key: types.FieldDiagnosis},
	{label: "Reasoning", key: types.FieldReasoning},
}

// runDiagnostician executes stage 1: an initial diagnosis from the full
// case, history included.
func (r *Runner) runDiagnostician(ctx context.Context, c types.MedicalCase) (types.StageOutput, error) {
	prompt, err := renderPrompt(diagnosticianTmpl, c)
	if err != nil {
		return types.StageOutput{}, fmt.Errorf("rendering diagnostician prompt: %w", err)
	}

	res, err := r.adapter.Generate(ctx, prompt, r.opts())
	if err != nil {
		return types.StageOutput{}, fmt.Errorf("diagnostician stage: %w", err)
	}

	return types.StageOutput{
		Stage:        types.StageDiagnostician,
		RawText:      res.Text,
		Fields:       parseDiagnosis(res.Text),
		UsedFallback: res.UsedFallback,
	}, nil
}

// parseDiagnosis extracts diagnosis and reasoning sections. When the text
// carries no markers at all, the whole text becomes the reasoning and its
// first sentence the diagnosis, so a free-form completion is never lost.
func parseDiagnosis(text string) map[string]string {
	fields := parseSections(text, diagnosisLabels)
	if len(fields) == 0 {
		return map[string]string{
			types.FieldDiagnosis: firstSentence(text),
			types.FieldReasoning: text,
		}
	}
	if fields[types.FieldDiagnosis] == "" {
		fields[types.FieldDiagnosis] = firstSentence(text)
	}
	if fields[types.FieldReasoning] == "" {
		fields[types.FieldReasoning] = text
	}
	return fields
}
