// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlap scores lexical overlap between an independently derived
// diagnosis and a patient's past medical history. The score is the
// pipeline's bias signal: when a diagnosis produced without seeing the
// history still shares condition terms with it, the shared condition is a
// plausible anchor rather than a history artifact.
package overlap

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/nglebm19/debias-llm/pkg/types"
)

// Scorer classifies overlap between a diagnosis and past-history text.
// Implementations must be deterministic for a given input pair so that
// classification is reproducible without a generation backend. A semantic
// comparator can be substituted behind this interface without touching
// callers.
type Scorer interface {
	Score(diagnosisText, historyText string) types.OverlapAssessment
}

// LexicalScorer is the default Scorer: pure keyword-set intersection with a
// term-specificity rule. No generation call is involved.
type LexicalScorer struct{}

// minSpecificLen is the shortest shared term that can count as a
// condition-name match. Shorter matches are treated as generic.
const minSpecificLen = 4

// stopwords are dropped before comparison: English filler plus the
// boilerplate vocabulary of clinical write-ups (demographics, time
// expressions, report scaffolding).
var stopwords = map[string]bool{
	"the": true, "and": true, "with": true, "without": true, "for": true,
	"has": true, "had": true, "have": true, "was": true, "were": true,
	"are": true, "this": true, "that": true, "not": true, "but": true,
	"over": true, "onto": true, "into": true, "from": true, "since": true,
	"now": true, "then": true, "also": true, "any": true, "all": true,
	"patient": true, "male": true, "female": true, "year": true, "years": true,
	"old": true, "ago": true, "day": true, "days": true, "week": true,
	"weeks": true, "month": true, "months": true, "reports": true,
	"denies": true, "presents": true, "associated": true, "history": true,
	"medical": true, "past": true, "previous": true, "prior": true,
	"present": true, "illness": true, "complaint": true, "chief": true,
	"other": true, "significant": true, "well": true, "controlled": true,
	"likely": true, "most": true, "suspect": true, "suggest": true,
	"suggests": true, "diagnosis": true, "based": true, "given": true,
	"findings": true, "examination": true, "exam": true,
}

// genericTerms are clinical words two texts can share without implying the
// same condition. An intersection made only of these yields MEDIUM. This is
// the documented specificity rule; the boundary is a curated list plus the
// minimum-length cut, not a similarity model.
var genericTerms = map[string]bool{
	"pain": true, "ache": true, "acute": true, "chronic": true,
	"severe": true, "mild": true, "moderate": true, "intermittent": true,
	"persistent": true, "progressive": true, "recurrent": true,
	"condition": true, "disease": true, "disorder": true, "syndrome": true,
	"symptom": true, "symptoms": true, "infection": true, "inflammation": true,
	"left": true, "right": true, "lower": true, "upper": true,
	"bilateral": true, "diffuse": true, "localized": true, "resolved": true,
	"fatigue": true, "fever": true, "nausea": true, "cough": true,
	"tenderness": true, "swelling": true, "discomfort": true,
}

// Score tokenizes both texts into lowercase keyword sets, intersects them,
// and classifies: HIGH when the intersection contains a specific condition
// term, MEDIUM when it holds only generic terms, LOW when it is empty.
func (LexicalScorer) Score(diagnosisText, historyText string) types.OverlapAssessment {
	diag := tokenize(diagnosisText)
	hist := tokenize(historyText)

	var matched []string
	specific := false
	for term := range diag {
		if !hist[term] {
			continue
		}
		matched = append(matched, term)
		if len(term) >= minSpecificLen && !genericTerms[term] {
			specific = true
		}
	}
	sort.Strings(matched)

	switch {
	case len(matched) == 0:
		return types.OverlapAssessment{
			Score:     types.OverlapLow,
			Rationale: "the independent diagnosis shares no terms with the past medical history",
		}
	case specific:
		return types.OverlapAssessment{
			Score:        types.OverlapHigh,
			Rationale:    fmt.Sprintf("the past medical history shares condition terms with the independent diagnosis: %s", strings.Join(matched, ", ")),
			MatchedTerms: matched,
		}
	default:
		return types.OverlapAssessment{
			Score:        types.OverlapMedium,
			Rationale:    fmt.Sprintf("only generic clinical terms are shared with the past medical history: %s", strings.Join(matched, ", ")),
			MatchedTerms: matched,
		}
	}
}

// tokenize lowercases text and returns its keyword set with punctuation,
// short tokens, and stopwords removed.
func tokenize(text string) map[string]bool {
	set := make(map[string]bool)
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range fields {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		set[tok] = true
	}
	return set
}
