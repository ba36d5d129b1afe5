package config

import (
	"os"
	"strconv"
)

// REPOGRAPH_*-prefixed environment overrides.
const (
	// EnvProfile selects the active named profile.
	EnvProfile = "REPOGRAPH_PROFILE"
	// EnvMaxTokens overrides the token budget cap.
	EnvMaxTokens = "REPOGRAPH_MAX_TOKENS"
	// EnvFormat overrides the output format.
	EnvFormat = "REPOGRAPH_FORMAT"
	// EnvTokenizer overrides the token counting model.
	EnvTokenizer = "REPOGRAPH_TOKENIZER"
	// EnvOutput overrides the output file path.
	EnvOutput = "REPOGRAPH_OUTPUT"
	// EnvTarget overrides the LLM target preset.
	EnvTarget = "REPOGRAPH_TARGET"
	// EnvSemanticDepth overrides the dependency-traversal depth limit.
	EnvSemanticDepth = "REPOGRAPH_SEMANTIC_DEPTH"
	// EnvLogFormat overrides the log output format (not a profile field).
	EnvLogFormat = "REPOGRAPH_LOG_FORMAT"
)

// buildEnvMap flattens the REPOGRAPH_* overrides into a koanf confmap layer.
// Values that fail to parse are skipped rather than failing resolution.
func buildEnvMap() map[string]any {
	m := make(map[string]any)
	if v := os.Getenv(EnvFormat); v != "" {
		m["format"] = v
	}
	if v := os.Getenv(EnvTokenizer); v != "" {
		m["tokenizer"] = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		m["output"] = v
	}
	if v := os.Getenv(EnvTarget); v != "" {
		m["target"] = v
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["max_tokens"] = n
		}
	}
	if v := os.Getenv(EnvSemanticDepth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			m["semantic_depth"] = n
		}
	}
	return m
}
