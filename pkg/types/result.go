// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stage identifies one of the three reasoning stages.
type Stage string

const (
	StageDiagnostician Stage = "diagnostician"
	StageAdvocate      Stage = "advocate"
	StageSynthesizer   Stage = "synthesizer"
)

// Keys used in StageOutput.Fields. The diagnostician and advocate stages
// produce diagnosis and reasoning; the synthesizer produces the other four.
const (
	FieldDiagnosis      = "diagnosis"
	FieldReasoning      = "reasoning"
	FieldFinalDiagnosis = "final_diagnosis"
	FieldDifferential   = "differential"
	FieldHistoryImpact  = "history_impact"
	FieldNextSteps      = "next_steps"
)

// NotProvided marks a synthesizer section the backend did not produce.
// Parsing never fails a stage; absent sections carry this marker instead.
const NotProvided = "not provided"

// StageOutput is the parsed result of one stage. It is owned by the stage
// that produced it and read-only to downstream stages.
type StageOutput struct {
	Stage Stage `json:"stage" yaml:"stage"`

	// RawText is the full generated (or fallback) text.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Fields holds the parsed sections, keyed per stage.
	Fields map[string]string `json:"fields" yaml:"fields"`

	// UsedFallback is true when the adapter substituted a deterministic
	// template because the generation backend could not produce output.
	UsedFallback bool `json:"used_fallback" yaml:"used_fallback"`
}

// Field returns the named parsed section, or NotProvided when absent.
func (o StageOutput) Field(key string) string {
	if v, ok := o.Fields[key]; ok && v != "" {
		return v
	}
	return NotProvided
}

// OverlapScore classifies lexical overlap between the advocate's independent
// diagnosis and the past medical history.
type OverlapScore string

const (
	OverlapHigh   OverlapScore = "HIGH"
	OverlapMedium OverlapScore = "MEDIUM"
	OverlapLow    OverlapScore = "LOW"
)

// OverlapAssessment is the deterministic bias signal: how much the
// advocate's history-blind diagnosis nevertheless echoes the past medical
// history. It is embedded in the advocate's stage output and quoted in the
// synthesizer's prompt, never persisted on its own.
type OverlapAssessment struct {
	Score        OverlapScore `json:"score" yaml:"score"`
	Rationale    string       `json:"rationale" yaml:"rationale"`
	MatchedTerms []string     `json:"matched_terms,omitempty" yaml:"matched_terms,omitempty"`
}

// PipelineResult aggregates the three stage outputs and the overlap
// assessment. A fresh value is produced per run; nothing is carried across
// invocations.
type PipelineResult struct {
	Case          MedicalCase       `json:"case" yaml:"case"`
	Diagnostician StageOutput       `json:"diagnostician" yaml:"diagnostician"`
	Advocate      StageOutput       `json:"advocate" yaml:"advocate"`
	Synthesis     StageOutput       `json:"synthesis" yaml:"synthesis"`
	Overlap       OverlapAssessment `json:"overlap" yaml:"overlap"`
}
