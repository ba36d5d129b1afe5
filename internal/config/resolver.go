package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	koanf "github.com/knadh/koanf/v2"
)

// ResolveOptions configures multi-layer configuration resolution.
type ResolveOptions struct {
	// ProfileName selects a named profile; empty falls back to
	// REPOGRAPH_PROFILE, then "default".
	ProfileName string

	// ProfileFile is a standalone profile TOML (--profile-file). When set,
	// the repo-level repograph.toml is not consulted.
	ProfileFile string

	// TargetDir is where the repograph.toml search starts; "." when empty.
	TargetDir string

	// GlobalConfigPath overrides global-config discovery (used by tests).
	GlobalConfigPath string

	// CLIFlags carries explicit flag overrides, keyed by flat field name.
	CLIFlags map[string]any
}

// ResolvedConfig is the outcome of Resolve: the merged profile, the name it
// resolved under, and which layer supplied each field.
type ResolvedConfig struct {
	Profile     *Profile
	Sources     SourceMap
	ProfileName string
}

// Resolve merges the five configuration layers in precedence order --
// built-in defaults, global config, repo config (or standalone profile
// file), REPOGRAPH_* environment, CLI flags -- through one koanf instance.
// Missing files are skipped silently; unparseable ones fail. Asking for a
// named profile other than "default" that no loaded file defines fails; the
// error names the requested profile but does not list the defined ones.
func Resolve(opts ResolveOptions) (*ResolvedConfig, error) {
	name := opts.ProfileName
	if name == "" {
		if v := os.Getenv(EnvProfile); v != "" {
			name = v
		} else {
			name = "default"
		}
	}

	k := koanf.New(".")
	sources := make(SourceMap)
	loadLayer := func(m map[string]any, src Source) error {
		if len(m) == 0 {
			return nil
		}
		for key := range m {
			sources[key] = src
		}
		return k.Load(confmap.Provider(m, "."), nil)
	}

	if err := loadLayer(profileToFlatMap(DefaultProfile()), SourceDefault); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	profileFound := false

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		if discovered, err := DiscoverGlobalConfig(); err == nil {
			globalPath = discovered
		}
	}
	if globalPath != "" {
		found, err := loadProfileLayer(loadLayer, globalPath, name, SourceGlobal)
		if err != nil {
			return nil, err
		}
		profileFound = profileFound || found
	}

	if opts.ProfileFile != "" {
		found, err := loadProfileLayer(loadLayer, opts.ProfileFile, name, SourceRepo)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("profile %q not found in profile file %s", name, opts.ProfileFile)
		}
		profileFound = true
	} else {
		targetDir := opts.TargetDir
		if targetDir == "" {
			targetDir = "."
		}
		repoPath, err := DiscoverRepoConfig(targetDir)
		if err != nil {
			return nil, err
		}
		if repoPath != "" {
			found, err := loadProfileLayer(loadLayer, repoPath, name, SourceRepo)
			if err != nil {
				return nil, err
			}
			profileFound = profileFound || found
		}
	}

	if name != "default" && !profileFound {
		return nil, fmt.Errorf("profile %q not found in any configuration file", name)
	}

	if err := loadLayer(buildEnvMap(), SourceEnv); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}
	if err := loadLayer(opts.CLIFlags, SourceFlag); err != nil {
		return nil, fmt.Errorf("loading flag overrides: %w", err)
	}

	profile := flatMapToProfile(k)
	slog.Debug("config resolved", "profile", name, "fields", len(sources))
	return &ResolvedConfig{Profile: profile, Sources: sources, ProfileName: name}, nil
}

// loadProfileLayer loads path, resolves the named profile (with inheritance)
// against that file's profile map, and feeds its flat form into load. The
// bool reports whether the file defines the profile.
func loadProfileLayer(load func(map[string]any, Source) error, path, name string, src Source) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat config %s: %w", path, err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		return false, err
	}
	if cfg.Profile == nil {
		return false, nil
	}
	if _, ok := cfg.Profile[name]; !ok {
		if name != "default" {
			slog.Debug("profile not in file", "profile", name, "path", path,
				"available", strings.Join(profileNames(cfg.Profile), ", "))
		}
		return false, nil
	}
	resolved, err := resolveWithinFile(name, cfg.Profile, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, load(profileToFlatMap(resolved), src)
}

func profileNames(profiles map[string]*Profile) []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// profileToFlatMap flattens p into koanf keys. Zero scalars, empty slices,
// and nil toggles are omitted so they never mask a lower layer's value; a
// toggle explicitly set to false survives, because it is carried as a
// non-nil pointer.
func profileToFlatMap(p *Profile) map[string]any {
	m := make(map[string]any)
	setBool := func(key string, v *bool) {
		if v != nil {
			m[key] = *v
		}
	}
	setBool("include_tree", p.IncludeTree)
	setBool("include_stats", p.IncludeStats)
	setBool("include_toc", p.IncludeTOC)
	setBool("enhanced_context", p.EnhancedContext)
	setBool("git_context", p.GitContext)
	setBool("stop_on_first_budget_miss", p.StopOnFirstBudgetMiss)
	setStr := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	setInt := func(key string, v int) {
		if v != 0 {
			m[key] = v
		}
	}
	setSlice := func(key string, v []string) {
		if len(v) > 0 {
			m[key] = v
		}
	}

	setStr("output", p.Output)
	setStr("format", p.Format)
	setStr("tokenizer", p.Tokenizer)
	setStr("target", p.Target)
	setStr("custom_ignore_file", p.CustomIgnoreFile)
	setStr("document_header_template", p.DocumentHeaderTemplate)
	setStr("file_header_template", p.FileHeaderTemplate)
	setStr("llm_tool", p.LLMTool)
	setInt("max_tokens", p.MaxTokens)
	setInt("semantic_depth", p.SemanticDepth)
	setInt("git_context_depth", p.GitContextDepth)
	setSlice("ignore", p.Ignore)
	setSlice("include", p.Include)
	setSlice("relevance.tier_0", p.Relevance.Tier0)
	setSlice("relevance.tier_1", p.Relevance.Tier1)
	setSlice("relevance.tier_2", p.Relevance.Tier2)
	setSlice("relevance.tier_3", p.Relevance.Tier3)
	setSlice("relevance.tier_4", p.Relevance.Tier4)
	setSlice("relevance.tier_5", p.Relevance.Tier5)
	if len(p.CustomPriority) > 0 {
		m["custom_priority"] = p.CustomPriority
	}
	return m
}

// flatMapToProfile reassembles a Profile from the merged koanf tree.
func flatMapToProfile(k *koanf.Koanf) *Profile {
	p := &Profile{
		Output:                 k.String("output"),
		Format:                 k.String("format"),
		MaxTokens:              k.Int("max_tokens"),
		Tokenizer:              k.String("tokenizer"),
		Target:                 k.String("target"),
		CustomIgnoreFile:       k.String("custom_ignore_file"),
		DocumentHeaderTemplate: k.String("document_header_template"),
		FileHeaderTemplate:     k.String("file_header_template"),
		LLMTool:                k.String("llm_tool"),
		SemanticDepth:          k.Int("semantic_depth"),
		GitContextDepth:        k.Int("git_context_depth"),
		IncludeTree:            flatBool(k, "include_tree"),
		IncludeStats:           flatBool(k, "include_stats"),
		IncludeTOC:             flatBool(k, "include_toc"),
		EnhancedContext:        flatBool(k, "enhanced_context"),
		GitContext:             flatBool(k, "git_context"),
		StopOnFirstBudgetMiss:  flatBool(k, "stop_on_first_budget_miss"),
		Ignore:                 k.Strings("ignore"),
		Include:                k.Strings("include"),
		Relevance: RelevanceConfig{
			Tier0: k.Strings("relevance.tier_0"),
			Tier1: k.Strings("relevance.tier_1"),
			Tier2: k.Strings("relevance.tier_2"),
			Tier3: k.Strings("relevance.tier_3"),
			Tier4: k.Strings("relevance.tier_4"),
			Tier5: k.Strings("relevance.tier_5"),
		},
	}
	if rules, ok := k.Get("custom_priority").([]PriorityRuleConfig); ok {
		p.CustomPriority = rules
	}
	return p
}

func flatBool(k *koanf.Koanf, key string) *bool {
	if !k.Exists(key) {
		return nil
	}
	v := k.Bool(key)
	return &v
}
