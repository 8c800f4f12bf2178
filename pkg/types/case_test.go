package types

import (
	"errors"
	"testing"
	"time"
)

func TestMedicalCaseValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       MedicalCase
		wantErr bool
	}{
		{
			name: "complete case",
			c: MedicalCase{
				HPI:          "Sharp abdominal pain for 2 days.",
				PMH:          "Appendectomy 3 years ago.",
				PhysicalExam: "Abdomen soft, non-tender.",
			},
			wantErr: false,
		},
		{
			name: "empty PMH is allowed",
			c: MedicalCase{
				HPI:          "Progressive shortness of breath.",
				PhysicalExam: "Decreased breath sounds on the right.",
			},
			wantErr: false,
		},
		{
			name: "empty HPI rejected",
			c: MedicalCase{
				PMH:          "Hypertension.",
				PhysicalExam: "Unremarkable.",
			},
			wantErr: true,
		},
		{
			name: "whitespace-only HPI rejected",
			c: MedicalCase{
				HPI:          "   \n\t",
				PhysicalExam: "Unremarkable.",
			},
			wantErr: true,
		},
		{
			name: "empty exam rejected",
			c: MedicalCase{
				HPI: "Fatigue and joint pain for 3 weeks.",
				PMH: "Seasonal allergies.",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedCase) {
					t.Errorf("Validate() = %v, want ErrMalformedCase", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestStageOutputField(t *testing.T) {
	out := StageOutput{
		Stage:  StageSynthesizer,
		Fields: map[string]string{FieldFinalDiagnosis: "Viral syndrome.", FieldNextSteps: ""},
	}

	if got := out.Field(FieldFinalDiagnosis); got != "Viral syndrome." {
		t.Errorf("Field(final_diagnosis) = %q", got)
	}
	if got := out.Field(FieldNextSteps); got != NotProvided {
		t.Errorf("Field(next_steps) = %q, want %q", got, NotProvided)
	}
	if got := out.Field(FieldDifferential); got != NotProvided {
		t.Errorf("Field(differential) = %q, want %q", got, NotProvided)
	}
}

func TestGenerationConfigWithDefaults(t *testing.T) {
	got := GenerationConfig{}.WithDefaults()
	if got.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", got.Model, DefaultModel)
	}
	if got.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", got.MaxTokens, DefaultMaxTokens)
	}
	if got.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", got.Timeout, DefaultTimeout)
	}
	if got.Strict {
		t.Error("Strict should default to false")
	}
}

func TestGenerationConfigClampsToCeiling(t *testing.T) {
	got := GenerationConfig{MaxTokens: 99999, MaxTokenCeiling: 1024, Timeout: time.Second}.WithDefaults()
	if got.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want clamped to 1024", got.MaxTokens)
	}
}
