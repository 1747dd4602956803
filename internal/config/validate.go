package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural validity of a Config and reports every
// problem found, joined.
func Validate(cfg *Config) error {
	var errs []error

	if len(cfg.Roots) == 0 {
		errs = append(errs, errors.New("config: at least one root must be configured"))
	}
	for i, r := range cfg.Roots {
		if strings.TrimSpace(r) == "" {
			errs = append(errs, fmt.Errorf("config: roots[%d]: path is empty", i))
		}
	}

	if cfg.Suffix == "" {
		errs = append(errs, errors.New("config: suffix must not be empty"))
	}

	for i, e := range cfg.Exclude {
		if strings.ContainsAny(e, `/\`) {
			errs = append(errs, fmt.Errorf("config: exclude[%d]: %q must be a base name", i, e))
		}
	}

	return errors.Join(errs...)
}
