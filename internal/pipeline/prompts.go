// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"text/template"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// diagnosticianTmpl asks for an initial diagnosis from the complete clinical
// picture, history included.
var diagnosticianTmpl = template.Must(template.New("diagnostician").Parse(`You are a medical diagnostician. Analyze this case and provide an initial diagnosis using the complete clinical picture.

History of Present Illness:
{{.HPI}}

Past Medical History:
{{if .PMH}}{{.PMH}}{{else}}None reported.{{end}}

Physical Examination:
{{.PhysicalExam}}

Respond with exactly two labeled sections:

Diagnosis: the single most likely diagnosis.
Reasoning: the findings that support it and how they fit together.
`))

// advocateTmpl asks for an independent diagnosis from the current
// presentation only. The past medical history is deliberately absent from
// the template data so the separation is structural, not conventional.
var advocateTmpl = template.Must(template.New("advocate").Parse(`You are reviewing a case independently. Only the current symptoms and the examination findings are available to you; no past records exist.

History of Present Illness:
{{.HPI}}

Physical Examination:
{{.PhysicalExam}}

Respond with exactly two labeled sections:

Diagnosis: the single most likely diagnosis based only on what is in front of you.
Reasoning: the findings that support it and how they fit together.
`))

// synthesizerTmpl presents both prior diagnoses side by side with the
// overlap verdict and asks for a final, bias-aware synthesis.
var synthesizerTmpl = template.Must(template.New("synthesizer").Parse(`Two clinicians assessed the same patient. The first saw the complete record; the second saw only the current presentation, with the past medical history withheld.

Initial diagnosis (full record):
{{.InitialDiagnosis}}

Independent diagnosis (history withheld):
{{.IndependentDiagnosis}}

Overlap between the independent diagnosis and the past medical history: {{.OverlapScore}}.
{{.OverlapRationale}}

Past Medical History:
{{if .PMH}}{{.PMH}}{{else}}None reported.{{end}}

Synthesize a balanced final assessment. Respond with exactly four labeled sections:

Final Diagnosis: the conclusion after weighing both assessments.
Differential: a short list of alternatives still worth considering.
Impact of Past History: whether the past history genuinely changes the picture or merely anchors it.
Next Steps: recommended workup or management.
`))

// advocateData is the reduced field set the advocate template receives.
type advocateData struct {
	HPI          string
	PhysicalExam string
}

// synthesizerData carries the join inputs for the final stage.
type synthesizerData struct {
	InitialDiagnosis     string
	IndependentDiagnosis string
	OverlapScore         types.OverlapScore
	OverlapRationale     string
	PMH                  string
}

// renderPrompt executes a prompt template with its data.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
