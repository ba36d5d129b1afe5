package config

// DefaultProfile is the built-in base every resolution starts from. Callers
// get a fresh copy each time; mutating it never leaks into later calls.
func DefaultProfile() *Profile {
	return &Profile{
		Output:           "repograph-output.md",
		Format:           "markdown",
		MaxTokens:        128000,
		Tokenizer:        "cl100k_base",
		CustomIgnoreFile: ".repographignore",
		Ignore: []string{
			"node_modules",
			"dist",
			".git",
			"coverage",
			"__pycache__",
			".next",
			"target",
			"vendor",
		},
		SemanticDepth:          2,
		IncludeTree:            boolPtr(true),
		IncludeStats:           boolPtr(true),
		IncludeTOC:             boolPtr(true),
		EnhancedContext:        boolPtr(true),
		GitContext:             boolPtr(false),
		StopOnFirstBudgetMiss:  boolPtr(false),
		GitContextDepth:        50,
		DocumentHeaderTemplate: "# Repository context: {directory}",
		FileHeaderTemplate:     "## {path}",
		Relevance:              defaultRelevanceTiers(),
	}
}

func boolPtr(b bool) *bool { return &b }

// defaultRelevanceTiers is the built-in table-of-contents grouping: root
// manifests first, primary source next, tests/docs/CI plumbing last.
func defaultRelevanceTiers() RelevanceConfig {
	return RelevanceConfig{
		Tier0: []string{
			"package.json", "tsconfig.json", "Cargo.toml", "go.mod",
			"pyproject.toml", "setup.py", "pom.xml", "build.gradle",
			"Makefile", "Dockerfile", "docker-compose.yml", "docker-compose.yaml",
		},
		Tier1: []string{
			"src/**", "lib/**", "app/**", "cmd/**", "internal/**", "pkg/**",
		},
		Tier2: []string{
			"components/**", "hooks/**", "utils/**", "helpers/**",
			"middleware/**", "services/**", "models/**", "types/**",
		},
		Tier3: []string{
			"**/*_test.go", "**/*_test.py", "**/*.test.*", "**/*.spec.*",
			"**/__tests__/**", "**/tests/**",
		},
		Tier4: []string{
			"**/*.md", "docs/**", "README*", "CHANGELOG*", "CONTRIBUTING*", "LICENSE*",
		},
		Tier5: []string{
			".github/**", ".gitlab-ci.yml", ".gitlab/**",
			"**/*.lock", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock",
		},
	}
}
