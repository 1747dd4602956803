// Package config holds the root list and filters the driver runs with:
// built-in defaults, optional YAML overrides with environment variable
// expansion, and structural validation.
package config

// DefaultSuffix is the file name suffix collected when none is configured.
const DefaultSuffix = ".cpp"

// DefaultRoots are the subsystem source trees searched, in order.
var DefaultRoots = []string{
	"Core/common",
	"Core/core",
	"Core/audio_core",
	"Core/video_core",
	"Core/input_common",
	"Core/network",
	"Core/web_service",
}

// Config is the top-level configuration structure.
type Config struct {
	// Roots are searched in order. Duplicates are kept and produce
	// duplicate output lines.
	Roots []string `yaml:"roots"`

	// Suffix is matched case-sensitively against file names.
	Suffix string `yaml:"suffix"`

	// Exclude lists exact base names (files or directories) to prune.
	Exclude []string `yaml:"exclude,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Roots:  append([]string(nil), DefaultRoots...),
		Suffix: DefaultSuffix,
	}
}

// ExcludeSet returns Exclude as a lookup set, skipping empty entries.
func (c *Config) ExcludeSet() map[string]struct{} {
	m := make(map[string]struct{}, len(c.Exclude))
	for _, v := range c.Exclude {
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}
