package config

import (
	"errors"
	"fmt"

	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

// Validate checks the config for structural correctness. Unlike
// filter.New it reports every problem it finds, and it treats an unknown
// level name as an error.
func Validate(c *Config) []error {
	var errs []error

	if c.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", c.Version))
	}

	errs = append(errs, validateFilter("filter", c.Filter)...)
	for _, name := range c.ProfileNames() {
		errs = append(errs, validateFilter(fmt.Sprintf("profile %q", name), c.Profiles[name])...)
	}

	return errs
}

func validateFilter(where string, f Filter) []error {
	var errs []error

	if f.Level != "" {
		if _, ok := core.LookupLevel(f.Level); !ok {
			errs = append(errs, fmt.Errorf("%s: level %q is not a known level", where, f.Level))
		}
	}
	errs = append(errs, validatePatterns(where, "msg", f.Msg)...)
	errs = append(errs, validatePatterns(where, "tag", f.Tag)...)

	return errs
}

// validatePatterns compiles each pattern on its own so that every invalid
// one is reported, not just the first.
func validatePatterns(where, field string, patterns []string) []error {
	var errs []error
	for i, p := range patterns {
		if _, err := filter.Compile([]string{p}); err != nil {
			var pe *filter.PatternError
			if errors.As(err, &pe) {
				pe.Index = i
			}
			errs = append(errs, fmt.Errorf("%s: %s: %w", where, field, err))
		}
	}
	return errs
}
