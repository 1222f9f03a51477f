package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/reflect-api/internal/adapters/llm"
)

func TestParseReflectionText(t *testing.T) {
	text := `SUMMARY: You had a rough week at work.
PATTERN: Stress keeps showing up around deadlines.
SUGGESTION: Block out one deadline-free evening this week.`

	parts, err := llm.ParseReflectionText(text)
	require.NoError(t, err)
	assert.Equal(t, "You had a rough week at work.", parts.Summary)
	assert.Equal(t, "Stress keeps showing up around deadlines.", parts.Pattern)
	assert.Equal(t, "Block out one deadline-free evening this week.", parts.Suggestion)
}

func TestParseReflectionTextToleratesPreambleAndCase(t *testing.T) {
	text := `Here is your reflection!

Summary: a summary.
Pattern: a pattern.
Suggestion: a suggestion.`

	parts, err := llm.ParseReflectionText(text)
	require.NoError(t, err)
	assert.Equal(t, "a summary.", parts.Summary)
}

func TestParseReflectionTextRejectsMalformedOutput(t *testing.T) {
	malformed := []string{
		"just some prose with no sections at all",
		"SUMMARY: only a summary here",
		"SUGGESTION: out of order\nSUMMARY: s\nPATTERN: p",
		"SUMMARY:\nPATTERN: p\nSUGGESTION: g", // empty section
	}
	for _, text := range malformed {
		_, err := llm.ParseReflectionText(text)
		assert.Error(t, err, "input %q must be rejected", text)
	}
}

func TestMockCallerIsDeterministicAndCounts(t *testing.T) {
	mock := llm.NewMockCaller()
	ctx := context.Background()

	a1, err := mock.Call(ctx, "m", "sys", "entry one")
	require.NoError(t, err)
	a2, err := mock.Call(ctx, "m", "sys", "entry one")
	require.NoError(t, err)
	b, err := mock.Call(ctx, "m", "sys", "entry two")
	require.NoError(t, err)

	assert.Equal(t, a1, a2, "same prompt, same parts")
	assert.NotEqual(t, a1.Summary, b.Summary, "different prompt, different parts")
	assert.Equal(t, 3, mock.Calls())
}
