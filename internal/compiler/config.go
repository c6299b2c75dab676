package compiler

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the active compile configuration: pure key/value options,
// replaced wholesale by Configure.
type Config struct {
	Target      string `toml:"target"`
	Mode        string `toml:"mode"`
	Strict      bool   `toml:"strict"`
	LineNumbers bool   `toml:"line_numbers"`
	KeepLines   bool   `toml:"keep_lines"`
	Minify      bool   `toml:"minify"`
	Color       bool   `toml:"color"`
}

// DefaultConfig targets the running dialect in file mode.
func DefaultConfig() Config {
	return Config{Target: "sys", Mode: "file"}
}

// LoadProfile reads a lilt.toml profile over the defaults. Keys absent
// from the file keep their default values; unknown keys are an error so
// typos surface instead of being ignored.
func LoadProfile(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	meta, err := toml.Decode(string(raw), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
