package reflection

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quillnotes/reflect-api/internal/domain"
)

const (
	minContentLength = 10
	maxContentLength = 5000

	// maxLeadingRun is the longest allowed run of one repeated character
	// at the start of an entry.
	maxLeadingRun = 20
)

// symbolRun matches 10+ consecutive characters outside words, whitespace
// and basic punctuation: a cheap tell for keyboard mashing or binary paste.
var symbolRun = regexp.MustCompile(`[^\w\s.,!?;:'"()\-]{10,}`)

// Validate checks a journal entry before it is allowed near the rate
// limiter or the model. Pure function of its input, no side effects.
func Validate(content string) *domain.ReflectionError {
	if content == "" {
		return domain.NewValidationError("Content field is required")
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return domain.NewValidationError("Content cannot be empty or whitespace only")
	}
	if n := utf8.RuneCountInString(trimmed); n < minContentLength {
		return domain.NewValidationError(
			fmt.Sprintf("Content must be at least %d characters long", minContentLength))
	} else if n > maxContentLength {
		return domain.NewValidationError(
			fmt.Sprintf("Content must be at most %d characters long", maxContentLength))
	}

	if leadingRun(trimmed) > maxLeadingRun {
		return domain.NewValidationError(
			"Content looks like repeated characters. Please write a real journal entry")
	}
	if symbolRun.MatchString(trimmed) {
		return domain.NewValidationError(
			"Content contains too many unusual characters")
	}

	return nil
}

// leadingRun counts how many times the first rune repeats at the start.
func leadingRun(s string) int {
	var first rune
	count := 0
	for i, r := range s {
		if i == 0 {
			first = r
			count = 1
			continue
		}
		if r != first {
			break
		}
		count++
	}
	return count
}
