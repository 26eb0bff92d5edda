package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modoterra/logsift/pkg/config"
	"github.com/modoterra/logsift/pkg/core"
	"github.com/modoterra/logsift/pkg/filter"
)

// envPrefix namespaces the environment variables viper reads.
const envPrefix = "LOGSIFT"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every command of one invocation.
type app struct {
	v   *viper.Viper
	msg []string
	tag []string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "logsift",
		Short: "Filter structured log records by level, message and tag",
		Long: `logsift reads JSON log records, one per line, and writes the ones that pass the filter.

A record passes when its level is at or above --level, at least one --msg pattern
matches its message (if any are given) and at least one --tag pattern matches its
tag (if any are given). Patterns are unanchored regular expressions.`,
		SilenceUsage: true,
		RunE:         a.runFilter,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "path to logsift.yaml (default ./"+config.DefaultPath+" if present)")
	pf.String("profile", "", "named profile from the config file")
	pf.String("level", "", "minimum level to keep (verbose, debug, info, warn, error, fatal, assert)")
	pf.StringArrayVar(&a.msg, "msg", nil, "message pattern; repeat to match any of several")
	pf.StringArrayVar(&a.tag, "tag", nil, "tag pattern; repeat to match any of several")
	pf.String("log-level", "info", "diagnostic log level (debug, info, warn, error)")
	for _, name := range []string{"config", "profile", "level", "log-level"} {
		if err := a.v.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s flag: %v", name, err))
		}
	}

	root.Flags().String("input", "", "read records from this file instead of stdin")

	root.AddCommand(a.checkCmd())
	root.AddCommand(a.explainCmd())
	root.AddCommand(configCmd())
	root.AddCommand(a.tryCmd())
	root.AddCommand(versionCmd())

	return root
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// resolveFilter merges the config file, the selected profile, environment
// and flags, in increasing order of precedence.
func (a *app) resolveFilter(cmd *cobra.Command, logger *slog.Logger) (config.Filter, error) {
	var f config.Filter

	path := a.v.GetString("config")
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	}
	profile := a.v.GetString("profile")

	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return f, err
		}
		if f, err = c.Resolve(profile); err != nil {
			return f, err
		}
		logger.Debug("config loaded", "path", path, "profile", profile)
	} else if profile != "" {
		return f, errors.New("--profile needs a config file")
	}

	if a.v.IsSet("level") {
		f.Level = a.v.GetString("level")
	}
	flags := cmd.Flags()
	if flags.Changed("msg") {
		f.Msg = a.msg
	}
	if flags.Changed("tag") {
		f.Tag = a.tag
	}
	return f, nil
}

// buildPredicate resolves and compiles the filter, warning about level
// names that fall back to keeping every level.
func (a *app) buildPredicate(cmd *cobra.Command, logger *slog.Logger) (*filter.Predicate, error) {
	f, err := a.resolveFilter(cmd, logger)
	if err != nil {
		return nil, err
	}
	if f.Level != "" {
		if _, ok := core.LookupLevel(f.Level); !ok {
			logger.Warn("unknown level, keeping all levels", "level", f.Level)
		}
	}
	p, err := f.Predicate()
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}
	return p, nil
}
