package config

// mergeProfile layers override on top of base into a fresh Profile. Strings
// and ints override when set (non-empty / non-zero); toggle pointers
// override when non-nil, so an explicit false wins but an absent key does
// not; slices replace wholesale when the override slice is non-empty;
// relevance tiers replace per tier. Extends is cleared: a merged profile is
// fully resolved.
func mergeProfile(base, override *Profile) *Profile {
	return &Profile{
		Output:    pick(base.Output, override.Output),
		Format:    pick(base.Format, override.Format),
		Tokenizer: pick(base.Tokenizer, override.Tokenizer),
		Target:    pick(base.Target, override.Target),

		MaxTokens:       pickInt(base.MaxTokens, override.MaxTokens),
		SemanticDepth:   pickInt(base.SemanticDepth, override.SemanticDepth),
		GitContextDepth: pickInt(base.GitContextDepth, override.GitContextDepth),

		IncludeTree:           pickBool(base.IncludeTree, override.IncludeTree),
		IncludeStats:          pickBool(base.IncludeStats, override.IncludeStats),
		IncludeTOC:            pickBool(base.IncludeTOC, override.IncludeTOC),
		EnhancedContext:       pickBool(base.EnhancedContext, override.EnhancedContext),
		GitContext:            pickBool(base.GitContext, override.GitContext),
		StopOnFirstBudgetMiss: pickBool(base.StopOnFirstBudgetMiss, override.StopOnFirstBudgetMiss),

		CustomIgnoreFile:       pick(base.CustomIgnoreFile, override.CustomIgnoreFile),
		DocumentHeaderTemplate: pick(base.DocumentHeaderTemplate, override.DocumentHeaderTemplate),
		FileHeaderTemplate:     pick(base.FileHeaderTemplate, override.FileHeaderTemplate),
		LLMTool:                pick(base.LLMTool, override.LLMTool),

		Ignore:         pickSlice(base.Ignore, override.Ignore),
		Include:        pickSlice(base.Include, override.Include),
		CustomPriority: pickRules(base.CustomPriority, override.CustomPriority),

		Relevance: RelevanceConfig{
			Tier0: pickSlice(base.Relevance.Tier0, override.Relevance.Tier0),
			Tier1: pickSlice(base.Relevance.Tier1, override.Relevance.Tier1),
			Tier2: pickSlice(base.Relevance.Tier2, override.Relevance.Tier2),
			Tier3: pickSlice(base.Relevance.Tier3, override.Relevance.Tier3),
			Tier4: pickSlice(base.Relevance.Tier4, override.Relevance.Tier4),
			Tier5: pickSlice(base.Relevance.Tier5, override.Relevance.Tier5),
		},
	}
}

func pick(base, override string) string {
	if override != "" {
		return override
	}
	return base
}

func pickInt(base, override int) int {
	if override != 0 {
		return override
	}
	return base
}

func pickSlice(base, override []string) []string {
	if len(override) > 0 {
		return append([]string(nil), override...)
	}
	return append([]string(nil), base...)
}

func pickRules(base, override []PriorityRuleConfig) []PriorityRuleConfig {
	if len(override) > 0 {
		return append([]PriorityRuleConfig(nil), override...)
	}
	return append([]PriorityRuleConfig(nil), base...)
}

func pickBool(base, override *bool) *bool {
	if override != nil {
		return override
	}
	return base
}
