package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envRef finds ${NAME} and ${NAME:-fallback} in a config file.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Load reads the --config file given at path on top of Default, so roots
// or suffix left out of the file keep their built-in values. A reference to
// an unset variable without a fallback fails the load, which the CLI reports
// as a usage error.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}

	text, err := substituteEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(text, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}

// substituteEnv resolves every variable reference in raw. All unset names
// are reported together.
func substituteEnv(raw []byte) ([]byte, error) {
	var missing []error
	out := envRef.ReplaceAllFunc(raw, func(ref []byte) []byte {
		m := envRef.FindSubmatch(ref)
		if v, ok := os.LookupEnv(string(m[1])); ok {
			return []byte(v)
		}
		if m[2] != nil {
			return m[2]
		}
		missing = append(missing, fmt.Errorf("variable %s is not set", m[1]))
		return ref
	})
	return out, errors.Join(missing...)
}
