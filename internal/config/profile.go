package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// maxInheritanceDepth only gates a warning; deeper chains still resolve.
const maxInheritanceDepth = 3

// ProfileResolution is a fully flattened profile plus the inheritance chain
// that produced it (requested profile first, ultimate ancestor last).
type ProfileResolution struct {
	Profile *Profile
	Chain   []string
}

// ResolveProfile flattens the named profile's Extends chain over the built-in
// defaults. The name "default" always resolves, synthesized from
// DefaultProfile when the map does not define it. Cycles (including
// self-extends) are detected and reported with the full cycle path.
func ResolveProfile(name string, profiles map[string]*Profile) (*ProfileResolution, error) {
	res, err := resolveChain(name, profiles, nil)
	if err != nil {
		return nil, err
	}
	if len(res.Chain) > maxInheritanceDepth {
		slog.Warn("deep profile inheritance; consider flattening",
			"profile", name, "chain", strings.Join(res.Chain, " -> "))
	}
	return res, nil
}

// resolveWithinFile flattens name's Extends chain using only the profiles
// one file defines, with no implicit default base. The result carries just
// the fields that file actually sets, which is what lets a higher config
// layer add its own keys without re-asserting (and thereby masking) every
// built-in default beneath it.
func resolveWithinFile(name string, profiles map[string]*Profile, visited []string) (*Profile, error) {
	for _, v := range visited {
		if v == name {
			return nil, fmt.Errorf("circular profile inheritance: %s",
				strings.Join(append(visited, name), " -> "))
		}
	}
	visited = append(visited, name)

	profile := profiles[name]
	if profile == nil {
		// An extends target the file does not define contributes nothing.
		return &Profile{}, nil
	}
	if profile.Extends == nil || *profile.Extends == "" {
		merged := mergeProfile(&Profile{}, profile)
		return merged, nil
	}
	parent, err := resolveWithinFile(*profile.Extends, profiles, visited)
	if err != nil {
		return nil, fmt.Errorf("resolving parent %q for profile %q: %w", *profile.Extends, name, err)
	}
	return mergeProfile(parent, profile), nil
}

func resolveChain(name string, profiles map[string]*Profile, visited []string) (*ProfileResolution, error) {
	for _, v := range visited {
		if v == name {
			return nil, fmt.Errorf("circular profile inheritance: %s",
				strings.Join(append(visited, name), " -> "))
		}
	}
	visited = append(visited, name)

	profile := profiles[name]
	if profile == nil {
		if name != "default" {
			return nil, fmt.Errorf("profile %q is not defined", name)
		}
		profile = DefaultProfile()
	}

	if profile.Extends == nil || *profile.Extends == "" {
		if name == "default" {
			return &ProfileResolution{
				Profile: mergeProfile(DefaultProfile(), profile),
				Chain:   []string{name},
			}, nil
		}
		// No explicit parent: every profile implicitly extends "default" so
		// unset fields always land on usable values. The implicit hop gets a
		// fresh visited set; "default" appearing elsewhere in the chain is
		// not a cycle.
		parent, err := resolveChain("default", profiles, nil)
		if err != nil {
			return nil, fmt.Errorf("resolving default base for %q: %w", name, err)
		}
		return &ProfileResolution{
			Profile: mergeProfile(parent.Profile, profile),
			Chain:   append([]string{name}, parent.Chain...),
		}, nil
	}

	parent, err := resolveChain(*profile.Extends, profiles, visited)
	if err != nil {
		return nil, fmt.Errorf("resolving parent %q for profile %q: %w", *profile.Extends, name, err)
	}
	return &ProfileResolution{
		Profile: mergeProfile(parent.Profile, profile),
		Chain:   append([]string{name}, parent.Chain...),
	}, nil
}
