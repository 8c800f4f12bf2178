package pipeline

import (
	"testing"

	"github.com/nglebm19/debias-llm/pkg/types"
)

func TestParseSections(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		labels []sectionLabel
		want   map[string]string
	}{
		{
			name: "two plain sections",
			text: "Diagnosis: Acute appendicitis.\nReasoning: RLQ pain with guarding.\nFurther lines of reasoning.",
			labels: diagnosisLabels,
			want: map[string]string{
				types.FieldDiagnosis: "Acute appendicitis.",
				types.FieldReasoning: "RLQ pain with guarding.\nFurther lines of reasoning.",
			},
		},
		{
			name: "markdown decorated labels",
			text: "**Diagnosis:** Community-acquired pneumonia.\n\n## Reasoning:\nFocal crackles and fever.",
			labels: diagnosisLabels,
			want: map[string]string{
				types.FieldDiagnosis: "Community-acquired pneumonia.",
				types.FieldReasoning: "Focal crackles and fever.",
			},
		},
		{
			name: "case-insensitive label match",
			text: "DIAGNOSIS: Gout.\nreasoning: Podagra with tophi.",
			labels: diagnosisLabels,
			want: map[string]string{
				types.FieldDiagnosis: "Gout.",
				types.FieldReasoning: "Podagra with tophi.",
			},
		},
		{
			name:   "no markers at all",
			text:   "The patient most likely has a viral syndrome. Rest is advised.",
			labels: diagnosisLabels,
			want:   map[string]string{},
		},
		{
			name: "content on following lines",
			text: "Diagnosis:\nLumbar disc herniation.\nReasoning:\nPositive straight leg raise.",
			labels: diagnosisLabels,
			want: map[string]string{
				types.FieldDiagnosis: "Lumbar disc herniation.",
				types.FieldReasoning: "Positive straight leg raise.",
			},
		},
		{
			name: "synthesis labels",
			text: "Final Diagnosis: Pleural effusion.\nDifferential: Pneumonia, heart failure.\nImpact of Past History: Prior MI anchors but does not explain the exam.\nNext Steps: Chest radiograph.",
			labels: synthesisLabels,
			want: map[string]string{
				types.FieldFinalDiagnosis: "Pleural effusion.",
				types.FieldDifferential:   "Pneumonia, heart failure.",
				types.FieldHistoryImpact:  "Prior MI anchors but does not explain the exam.",
				types.FieldNextSteps:      "Chest radiograph.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSections(tt.text, tt.labels)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sections %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("fields[%q] = %q, want %q", key, got[key], want)
				}
			}
		})
	}
}

func TestParseDiagnosisFallsBackToFirstSentence(t *testing.T) {
	text := "This looks like uncomplicated cystitis. Dysuria without fever or flank pain."
	fields := parseDiagnosis(text)

	if fields[types.FieldDiagnosis] != "This looks like uncomplicated cystitis." {
		t.Errorf("diagnosis = %q", fields[types.FieldDiagnosis])
	}
	if fields[types.FieldReasoning] != text {
		t.Errorf("reasoning = %q, want the full text", fields[types.FieldReasoning])
	}
}

func TestParseSynthesisDefaultsMissingSections(t *testing.T) {
	fields := parseSynthesis("Final Diagnosis: Post-viral fatigue.")

	if fields[types.FieldFinalDiagnosis] != "Post-viral fatigue." {
		t.Errorf("final diagnosis = %q", fields[types.FieldFinalDiagnosis])
	}
	for _, key := range []string{types.FieldDifferential, types.FieldHistoryImpact, types.FieldNextSteps} {
		if fields[key] != types.NotProvided {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], types.NotProvided)
		}
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"One sentence. Another one.", "One sentence."},
		{"No terminator at all", "No terminator at all"},
		{"Line break\nsecond line.", "Line break"},
		{"  Leading space. Rest.", "Leading space."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstSentence(tt.text); got != tt.want {
			t.Errorf("firstSentence(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
