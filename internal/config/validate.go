package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidateProfile checks a resolved profile and returns every problem found,
// hard errors first. An empty result means the profile is usable as-is.
func ValidateProfile(name string, p *Profile) []ValidationError {
	var problems []ValidationError
	field := func(f string) string { return fmt.Sprintf("profile.%s.%s", name, f) }

	switch p.Format {
	case "", "markdown", "xml":
	default:
		problems = append(problems, ValidationError{
			Severity: "error", Field: field("format"),
			Message: fmt.Sprintf("invalid format %q", p.Format),
			Suggest: `use "markdown" or "xml"`,
		})
	}

	switch p.Tokenizer {
	case "", "cl100k_base", "o200k_base", "none":
	default:
		problems = append(problems, ValidationError{
			Severity: "error", Field: field("tokenizer"),
			Message: fmt.Sprintf("invalid tokenizer %q", p.Tokenizer),
			Suggest: `use "cl100k_base", "o200k_base", or "none"`,
		})
	}

	switch p.Target {
	case "", "claude", "chatgpt", "generic":
	default:
		problems = append(problems, ValidationError{
			Severity: "error", Field: field("target"),
			Message: fmt.Sprintf("invalid target %q", p.Target),
			Suggest: `use "claude", "chatgpt", or "generic"`,
		})
	}

	if p.MaxTokens < 0 {
		problems = append(problems, ValidationError{
			Severity: "error", Field: field("max_tokens"),
			Message: "max_tokens must not be negative",
		})
	}
	if p.SemanticDepth < 0 {
		problems = append(problems, ValidationError{
			Severity: "error", Field: field("semantic_depth"),
			Message: "semantic_depth must not be negative",
		})
	}

	problems = append(problems, validatePatterns(field("ignore"), p.Ignore)...)
	problems = append(problems, validatePatterns(field("include"), p.Include)...)
	for i, rule := range p.CustomPriority {
		if !doublestar.ValidatePattern(rule.Pattern) {
			problems = append(problems, ValidationError{
				Severity: "error",
				Field:    fmt.Sprintf("%s[%d]", field("custom_priority"), i),
				Message:  fmt.Sprintf("invalid glob pattern %q", rule.Pattern),
			})
		}
	}

	tiers := [][]string{
		p.Relevance.Tier0, p.Relevance.Tier1, p.Relevance.Tier2,
		p.Relevance.Tier3, p.Relevance.Tier4, p.Relevance.Tier5,
	}
	for tier, patterns := range tiers {
		problems = append(problems,
			validatePatterns(fmt.Sprintf("%s.tier_%d", field("relevance"), tier), patterns)...)
	}

	return problems
}

func validatePatterns(fieldPath string, patterns []string) []ValidationError {
	var problems []ValidationError
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			problems = append(problems, ValidationError{
				Severity: "error",
				Field:    fmt.Sprintf("%s[%d]", fieldPath, i),
				Message:  fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}
	return problems
}

// HasErrors reports whether any problem carries "error" severity.
func HasErrors(problems []ValidationError) bool {
	for _, p := range problems {
		if p.Severity == "error" {
			return true
		}
	}
	return false
}
