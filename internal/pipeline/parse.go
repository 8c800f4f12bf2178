// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "strings"

// sectionLabel pairs a label as instructed in a prompt with the Fields key
// it parses into.
type sectionLabel struct {
	label string
	key   string
}

// parseSections scrapes labeled sections out of free-form generated text.
// A section starts at a line whose leading text is a known label followed by
// a colon, case-insensitively, tolerating markdown decoration around the
// label. Content runs to the next label or end of text. Unmatched labels are
// simply absent from the result; callers decide how to default them.
func parseSections(text string, labels []sectionLabel) map[string]string {
	fields := make(map[string]string)
	current := ""
	var buf []string

	flush := func() {
		if current == "" {
			return
		}
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if content != "" {
			fields[current] = content
		}
		buf = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if key, rest, ok := matchLabel(line, labels); ok {
			flush()
			current = key
			if rest != "" {
				buf = append(buf, rest)
			}
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return fields
}

// matchLabel checks whether a line begins a labeled section and returns the
// field key and the remainder of the line after the colon.
func matchLabel(line string, labels []sectionLabel) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	// Strip markdown decoration: "**Diagnosis:**", "## Diagnosis:", "- Diagnosis:".
	trimmed = strings.TrimLeft(trimmed, "#-* ")
	trimmed = strings.TrimSpace(trimmed)

	for _, l := range labels {
		if len(trimmed) < len(l.label)+1 {
			continue
		}
		head := trimmed[:len(l.label)]
		if !strings.EqualFold(head, l.label) {
			continue
		}
		tail := trimmed[len(l.label):]
		tail = strings.TrimLeft(tail, "*")
		if !strings.HasPrefix(tail, ":") {
			continue
		}
		rest = strings.TrimSpace(strings.TrimLeft(strings.TrimPrefix(tail, ":"), "*"))
		return l.key, rest, true
	}
	return "", "", false
}

// firstSentence returns text up to and including the first sentence
// terminator, or the whole text when none is found.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return strings.TrimSpace(text[:i+1])
		}
		if r == '\n' {
			return strings.TrimSpace(text[:i])
		}
	}
	return text
}
