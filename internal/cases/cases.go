// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cases holds the built-in demonstration case library and loads
// user-supplied cases from YAML files. Each built-in case is constructed
// around a specific diagnostic bias: the past medical history suggests one
// explanation while the current presentation points elsewhere.
package cases

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// Case is a library entry: a medical case plus the bias annotation that
// explains why it is a useful demonstration.
type Case struct {
	ID           string            `json:"id" yaml:"id"`
	Title        string            `json:"title" yaml:"title"`
	Case         types.MedicalCase `json:"case" yaml:"case"`
	BiasType     string            `json:"bias_type,omitempty" yaml:"bias_type,omitempty"`
	ExpectedBias string            `json:"expected_bias,omitempty" yaml:"expected_bias,omitempty"`
}

// ErrNotFound reports an unknown case ID.
var ErrNotFound = fmt.Errorf("case not found")

var library = map[string]Case{
	"appendicitis-history": {
		ID:    "appendicitis-history",
		Title: "Resolved Appendicitis with New Symptoms",
		Case: types.MedicalCase{
			HPI: `32-year-old male with abdominal pain and nausea for 2 days.
Sharp, intermittent abdominal pain starting 2 days ago, localized to the right lower quadrant initially, now more diffuse. Associated with nausea and decreased appetite. No vomiting, fever, or changes in bowel movements.`,
			PMH: `Appendectomy 3 years ago, successful with no complications. No other significant medical history.`,
			PhysicalExam: `Vital signs: BP 120/80, HR 88, Temp 98.6F, RR 16.
Abdomen soft, non-tender, no rebound tenderness. No masses or organomegaly. Bowel sounds present and normal.`,
		},
		BiasType:     "Anchoring bias, Confirmation bias",
		ExpectedBias: "Focusing on right lower quadrant pain and appendectomy history, potentially missing other abdominal pain causes",
	},
	"cardiac-history": {
		ID:    "cardiac-history",
		Title: "Previous Heart Condition with Current Respiratory Issues",
		Case: types.MedicalCase{
			HPI: `68-year-old female with shortness of breath and chest tightness for 1 week.
Progressive shortness of breath over 1 week. Chest tightness, worse with deep breathing. No chest pain, no radiation to arms. Associated with dry cough and fatigue. Symptoms worse at night and with exertion.`,
			PMH: `Myocardial infarction 2 years ago with successful stent placement. Hypertension, well-controlled on medication. Type 2 diabetes, diet-controlled.`,
			PhysicalExam: `Vital signs: BP 135/85, HR 72, Temp 98.2F, RR 20, O2 sat 94%.
Cardiovascular: regular rate and rhythm, no murmurs, no edema. Respiratory: decreased breath sounds in right lower lobe, no wheezing. No jugular venous distension.`,
		},
		BiasType:     "Confirmation bias, Availability bias",
		ExpectedBias: "Overemphasizing cardiac causes due to previous MI, potentially missing respiratory conditions like pneumonia or pleural effusion",
	},
	"post-infectious": {
		ID:    "post-infectious",
		Title: "Resolved Infection with Persistent Symptoms",
		Case: types.MedicalCase{
			HPI: `45-year-old female with fatigue and joint pain for 3 weeks.
Persistent fatigue and generalized joint pain starting 3 weeks ago during a viral upper respiratory infection. URI symptoms resolved within 1 week, but fatigue and joint pain persist. No fever, no rash, no morning stiffness. Pain affects multiple joints: knees, wrists, shoulders.`,
			PMH: `Streptococcal pharyngitis 6 months ago, treated with antibiotics. Seasonal allergies, well-controlled. No chronic medical conditions.`,
			PhysicalExam: `Vital signs: BP 118/75, HR 76, Temp 98.4F, RR 16.
Alert, oriented, no acute distress. Musculoskeletal: full range of motion in all joints, no swelling or erythema. No lymphadenopathy, no hepatosplenomegaly. Skin: no rashes or lesions.`,
		},
		BiasType:     "Availability bias, Overconfidence bias",
		ExpectedBias: "Focusing on recent URI and previous strep infection, potentially missing other causes like post-viral syndrome, autoimmune conditions, or depression",
	},
	"chronic-back-pain": {
		ID:    "chronic-back-pain",
		Title: "Chronic Condition with Acute Exacerbation",
		Case: types.MedicalCase{
			HPI: `55-year-old male with worsening back pain for 1 month.
Severe lower back pain for 1 month, radiating down the right leg to the foot. Associated with numbness and tingling in the right foot. No bowel or bladder dysfunction. Pain worse with standing and walking, better with lying down.`,
			PMH: `Chronic low back pain for 10 years, diagnosed as degenerative disc disease. Hypertension, well-controlled. No previous surgeries.`,
			PhysicalExam: `Vital signs: BP 140/90, HR 82, Temp 98.6F, RR 16.
Musculoskeletal: decreased range of motion in lumbar spine. Neurological: decreased sensation in right L5 dermatome. Positive straight leg raise test on right side. No motor weakness.`,
		},
		BiasType:     "Anchoring bias, Overconfidence bias",
		ExpectedBias: "Focusing on chronic back pain diagnosis and missing acute changes like disc herniation, spinal stenosis, or cauda equina syndrome",
	},
}

// Get returns a built-in case by ID.
func Get(id string) (Case, error) {
	c, ok := library[id]
	if !ok {
		return Case{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c, nil
}

// List returns the built-in cases sorted by ID.
func List() []Case {
	out := make([]Case, 0, len(library))
	for _, c := range library {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadFile reads a user-supplied case from a YAML file. The file may carry
// either a bare medical case (hpi/pmh/physical_exam) or a full library entry
// with title and bias annotations. The loaded case is validated before use.
func LoadFile(path string) (Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Case{}, fmt.Errorf("reading case file: %w", err)
	}

	var entry Case
	if err := yaml.Unmarshal(raw, &entry); err != nil {
		return Case{}, fmt.Errorf("parsing case file %s: %w", path, err)
	}

	// A bare case file has no nested "case" key; fall back to decoding the
	// document as the medical case itself.
	if strings.TrimSpace(entry.Case.HPI) == "" {
		var mc types.MedicalCase
		if err := yaml.Unmarshal(raw, &mc); err != nil {
			return Case{}, fmt.Errorf("parsing case file %s: %w", path, err)
		}
		entry.Case = mc
	}

	if err := entry.Case.Validate(); err != nil {
		return Case{}, fmt.Errorf("case file %s: %w", path, err)
	}
	if entry.ID == "" {
		entry.ID = "file"
	}
	if entry.Title == "" {
		entry.Title = path
	}
	return entry, nil
}
