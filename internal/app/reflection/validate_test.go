package reflection_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/reflect-api/internal/app/reflection"
	"github.com/quillnotes/reflect-api/internal/domain"
)

func TestValidateAcceptsNormalEntries(t *testing.T) {
	entries := []string{
		"Today was a long day at work and I feel drained.",
		strings.Repeat("a", 10),         // exactly at the minimum
		strings.Repeat("journal ", 625), // 5000 characters, 4999 once trimmed
		"  padded with whitespace but long enough  ",
	}
	for _, e := range entries {
		assert.Nil(t, reflection.Validate(e), "entry %q should be valid", e)
	}
}

func TestValidateRejectsMissingContent(t *testing.T) {
	err := reflection.Validate("")
	require.NotNil(t, err)
	assert.Equal(t, domain.ErrValidation, err.Code)
	assert.Equal(t, "Content field is required", err.Message)
}

func TestValidateRejectsWhitespaceOnly(t *testing.T) {
	err := reflection.Validate("   \n\t  ")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "whitespace")
}

func TestValidateLengthBoundaries(t *testing.T) {
	assert.Nil(t, reflection.Validate(strings.Repeat("x", 10)))
	assert.NotNil(t, reflection.Validate(strings.Repeat("x", 9)))

	assert.Nil(t, reflection.Validate("y"+strings.Repeat("x", 4999)))
	assert.NotNil(t, reflection.Validate("y"+strings.Repeat("x", 5000)))
}

func TestValidateTrimsBeforeMeasuring(t *testing.T) {
	// 9 characters once trimmed: too short.
	assert.NotNil(t, reflection.Validate("  "+strings.Repeat("x", 9)+"  "))
}

func TestValidateRejectsLeadingCharacterRun(t *testing.T) {
	assert.NotNil(t, reflection.Validate(strings.Repeat("a", 21)),
		"21 repeated characters is spam")
	assert.Nil(t, reflection.Validate(strings.Repeat("a", 20)+" and then some words"),
		"20 repeated characters is still fine")
}

func TestValidateRejectsSymbolRuns(t *testing.T) {
	assert.NotNil(t, reflection.Validate("my entry @#$%^&*@#$ more text"))
	assert.Nil(t, reflection.Validate("normal punctuation: really?! yes, (mostly) it's fine."))
}
