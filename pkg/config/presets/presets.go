// Package presets generates starter logsift.yaml configs.
package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modoterra/logsift/pkg/config"
)

type preset struct {
	summary  string
	generate func() *config.Config
}

var presets = map[string]preset{
	"default": {
		summary: `keep everything, with an "errors" profile to switch to`,
		generate: func() *config.Config {
			c := config.Default()
			c.Profiles = map[string]config.Filter{
				"errors": {Level: "error"},
			}
			return c
		},
	},
	"errors": {
		summary: "errors and worse, plus crash markers at any level in a profile",
		generate: func() *config.Config {
			return &config.Config{
				Version: 1,
				Filter:  config.Filter{Level: "error"},
				Profiles: map[string]config.Filter{
					"crashes": {Msg: []string{`(?i)panic`, `(?i)fatal exception`, `SIGSEGV`}},
				},
			}
		},
	},
	"network": {
		summary: "connection problems from network-ish tags",
		generate: func() *config.Config {
			return &config.Config{
				Version: 1,
				Vars:    map[string]string{"net": `(?i)^(net|http|dns|tcp|conn)`},
				Filter: config.Filter{
					Level: "warn",
					Msg:   []string{`(?i)timeout`, `(?i)refused`, `(?i)reset by peer`, `(?i)unreachable`},
					Tag:   []string{"${net}"},
				},
			}
		},
	},
}

// Names returns the available preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary returns a one-line description of the named preset.
func Summary(name string) string {
	return presets[name].summary
}

// Generate returns a fresh config for the named preset.
func Generate(name string) (*config.Config, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p.generate(), nil
}
