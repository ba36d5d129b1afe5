package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile_CleanDefaults(t *testing.T) {
	problems := ValidateProfile("default", DefaultProfile())
	assert.Empty(t, problems)
}

func TestValidateProfile_BadEnums(t *testing.T) {
	p := DefaultProfile()
	p.Format = "pdf"
	p.Tokenizer = "gpt9"
	p.Target = "llama"
	problems := ValidateProfile("work", p)
	require.Len(t, problems, 3)
	assert.True(t, HasErrors(problems))
	assert.Equal(t, "profile.work.format", problems[0].Field)
	assert.Contains(t, problems[0].Suggest, "markdown")
}

func TestValidateProfile_NegativeNumbers(t *testing.T) {
	p := DefaultProfile()
	p.MaxTokens = -1
	p.SemanticDepth = -2
	problems := ValidateProfile("x", p)
	assert.Len(t, problems, 2)
}

func TestValidateProfile_BadGlobs(t *testing.T) {
	p := DefaultProfile()
	p.Ignore = append(p.Ignore, "[unclosed")
	p.CustomPriority = []PriorityRuleConfig{{Pattern: "[also-bad", Weight: 1}}
	p.Relevance.Tier3 = []string{"[broken"}
	problems := ValidateProfile("x", p)
	assert.Len(t, problems, 3)
	assert.Contains(t, problems[0].Field, "ignore[")
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]ValidationError{{Severity: "warning"}}))
	assert.True(t, HasErrors([]ValidationError{{Severity: "warning"}, {Severity: "error"}}))
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Severity: "error", Field: "profile.x.format", Message: "bad", Suggest: "fix it"}
	assert.Equal(t, `[error] profile.x.format: bad (suggestion: fix it)`, e.Error())
	e.Suggest = ""
	assert.Equal(t, `[error] profile.x.format: bad`, e.Error())
}
