// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across the pipeline stages:
// the medical case, the per-stage outputs, the overlap assessment, and the
// configuration structs.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCase reports a MedicalCase with a missing required field.
// It is the only condition fatal to a pipeline run and is raised before
// any generation call is attempted.
var ErrMalformedCase = errors.New("malformed case")

// MedicalCase is a single patient case. It is constructed once, from user
// input or the predefined library, and never mutated afterwards; each stage
// receives only the fields it is allowed to see.
type MedicalCase struct {
	// HPI is the history of present illness: the current-symptom narrative.
	HPI string `json:"hpi" yaml:"hpi"`

	// PMH is the past medical history: prior diagnosed conditions. May be
	// empty for a patient with no relevant history. The devil's-advocate
	// stage never sees this field.
	PMH string `json:"pmh" yaml:"pmh"`

	// PhysicalExam is the examination findings.
	PhysicalExam string `json:"physical_exam" yaml:"physical_exam"`
}

// Validate checks the required fields. PMH may legitimately be empty.
func (c MedicalCase) Validate() error {
	if strings.TrimSpace(c.HPI) == "" {
		return fmt.Errorf("%w: history of present illness is empty", ErrMalformedCase)
	}
	if strings.TrimSpace(c.PhysicalExam) == "" {
		return fmt.Errorf("%w: physical exam is empty", ErrMalformedCase)
	}
	return nil
}
