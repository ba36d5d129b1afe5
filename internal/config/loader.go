package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadFromFile decodes the TOML config at path. Unknown keys are logged as
// warnings rather than rejected, so older binaries keep working against
// config files written for newer ones. Syntax errors carry the decoder's
// file/line context.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	warnUndecoded(meta, path)
	return &cfg, nil
}

// LoadFromString decodes TOML from memory; name labels log and error output.
func LoadFromString(data, name string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	warnUndecoded(meta, name)
	return &cfg, nil
}

func warnUndecoded(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	slog.Warn("unknown config keys will be ignored",
		"source", source, "keys", strings.Join(keys, ", "))
}
