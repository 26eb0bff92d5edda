package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/modoterra/logsift/pkg/filter"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "logsift.yaml"

// Config represents a logsift.yaml configuration file.
type Config struct {
	Version  int               `yaml:"version"            json:"version"`
	Vars     map[string]string `yaml:"vars,omitempty"     json:"vars,omitempty"`
	Filter   Filter            `yaml:"filter"             json:"filter"`
	Profiles map[string]Filter `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// Filter is the user-facing form of a filter: a level name and two
// pattern lists.
type Filter struct {
	Level string   `yaml:"level,omitempty" json:"level,omitempty"`
	Msg   []string `yaml:"msg,omitempty"   json:"msg,omitempty"`
	Tag   []string `yaml:"tag,omitempty"   json:"tag,omitempty"`
}

// Default returns a config whose filter keeps every record.
func Default() *Config {
	return &Config{Version: 1}
}

// Predicate compiles f.
func (f Filter) Predicate() (*filter.Predicate, error) {
	return filter.New(f.Level, f.Msg, f.Tag)
}

// Resolve returns the top-level filter, or the named profile when profile
// is not empty.
func (c *Config) Resolve(profile string) (Filter, error) {
	if profile == "" {
		return c.Filter, nil
	}
	f, ok := c.Profiles[profile]
	if !ok {
		return Filter{}, fmt.Errorf("unknown profile %q (have: %v)", profile, c.ProfileNames())
	}
	return f, nil
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a config and expands ${name} references to vars in every
// pattern.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.interpolate()
	return &c, nil
}

// Load reads and parses the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Save writes c to path as YAML.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

var varRef = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

func (c *Config) interpolate() {
	if len(c.Vars) == 0 {
		return
	}
	c.Filter = c.expandFilter(c.Filter)
	for name, f := range c.Profiles {
		c.Profiles[name] = c.expandFilter(f)
	}
}

func (c *Config) expandFilter(f Filter) Filter {
	f.Msg = c.expandAll(f.Msg)
	f.Tag = c.expandAll(f.Tag)
	return f
}

func (c *Config) expandAll(in []string) []string {
	for i, s := range in {
		in[i] = c.expand(s)
	}
	return in
}

// expand replaces known ${name} references. Unknown references are left
// as written so the pattern error points at them.
func (c *Config) expand(s string) string {
	return varRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := varRef.FindStringSubmatch(ref)[1]
		if v, ok := c.Vars[name]; ok {
			return v
		}
		return ref
	})
}
