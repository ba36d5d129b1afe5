package config

import "fmt"

// ApplyTargetPreset tunes p for a named LLM target: format and budget
// defaults per model family. Empty target is a no-op.
func ApplyTargetPreset(p *Profile, target string) error {
	switch target {
	case "":
	case "claude":
		p.Format = "xml"
		p.MaxTokens = 200000
	case "chatgpt":
		p.Format = "markdown"
		p.MaxTokens = 128000
	case "generic":
		p.Format = "markdown"
	default:
		return fmt.Errorf("unknown target %q (allowed: claude, chatgpt, generic)", target)
	}
	return nil
}
