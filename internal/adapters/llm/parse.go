package llm

import (
	"fmt"
	"strings"

	"github.com/quillnotes/reflect-api/internal/domain"
)

// Section labels the prompt instructs the model to emit, in order.
var sectionLabels = []string{"SUMMARY:", "PATTERN:", "SUGGESTION:"}

// ParseReflectionText extracts the three labeled sections from a model's
// free-text answer. Output before the first label and label casing
// variations are tolerated; a missing or empty section is an error so a
// malformed answer triggers the orchestrator's fallback.
func ParseReflectionText(text string) (domain.ModelParts, error) {
	upper := strings.ToUpper(text)

	idx := make([]int, len(sectionLabels))
	for i, label := range sectionLabels {
		pos := strings.Index(upper, label)
		if pos < 0 {
			return domain.ModelParts{}, fmt.Errorf("model output missing %q section", strings.TrimSuffix(label, ":"))
		}
		idx[i] = pos
	}
	if !(idx[0] < idx[1] && idx[1] < idx[2]) {
		return domain.ModelParts{}, fmt.Errorf("model output sections out of order")
	}

	section := func(i int) string {
		start := idx[i] + len(sectionLabels[i])
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1]
		}
		return strings.TrimSpace(text[start:end])
	}

	parts := domain.ModelParts{
		Summary:    section(0),
		Pattern:    section(1),
		Suggestion: section(2),
	}
	if parts.Summary == "" || parts.Pattern == "" || parts.Suggestion == "" {
		return domain.ModelParts{}, fmt.Errorf("model output has an empty section")
	}
	return parts, nil
}
