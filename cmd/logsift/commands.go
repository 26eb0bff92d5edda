package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/modoterra/logsift/internal/buildinfo"
	"github.com/modoterra/logsift/pkg/config"
	"github.com/modoterra/logsift/pkg/config/presets"
	"github.com/modoterra/logsift/pkg/core"
	tuimodel "github.com/modoterra/logsift/pkg/tui/model"
)

// --- Check ---

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build the filter and print its effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger(cmd)
			p, err := a.buildPredicate(cmd, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "level: %s\n", p.Threshold())
			printPatterns(cmd, "msg", p.MessagePatterns())
			printPatterns(cmd, "tag", p.TagPatterns())
			return nil
		},
	}
}

func printPatterns(cmd *cobra.Command, label string, patterns []string) {
	out := cmd.OutOrStdout()
	if len(patterns) == 0 {
		fmt.Fprintf(out, "%s: (any)\n", label)
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, p := range patterns {
		fmt.Fprintf(out, "  • %q\n", p)
	}
}

// --- Explain ---

func (a *app) explainCmd() *cobra.Command {
	var rec core.Record
	var level string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Evaluate one record and show which check decided it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger(cmd)
			p, err := a.buildPredicate(cmd, logger)
			if err != nil {
				return err
			}
			rec.Level = core.ParseLevel(level)

			d, reason := p.Explain(&rec)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "record:   %s %s %q\n",
				tuimodel.LevelStyle(rec.Level).Render(rec.Level.String()), rec.Tag, rec.Message)
			fmt.Fprintf(out, "filter:   %s\n", p)
			fmt.Fprintf(out, "decision: %s (%s)\n",
				tuimodel.DecisionStyle(d).Render(d.String()), reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "record-level", "", "level of the record to evaluate")
	cmd.Flags().StringVar(&rec.Tag, "record-tag", "", "tag of the record to evaluate")
	cmd.Flags().StringVar(&rec.Message, "record-message", "", "message of the record to evaluate")
	return cmd
}

// --- Config ---

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage logsift.yaml",
	}
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configValidateCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "Generate a logsift.yaml config",
		Long:  "Available presets: " + strings.Join(presets.Names(), ", ") + " (default: default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "default"
			if len(args) > 0 {
				name = args[0]
			}
			c, err := presets.Generate(name)
			if err != nil {
				return err
			}
			if err := config.Save(c, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s from preset %q (%s)\n", output, name, presets.Summary(name))
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", config.DefaultPath, "output file path")
	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a logsift.yaml config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) > 0 {
				path = args[0]
			}

			c, err := config.Load(path)
			if err != nil {
				return err
			}

			errs := config.Validate(c)
			if len(errs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d profiles)\n", path, len(c.Profiles))
				return nil
			}

			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  • %s\n", e)
			}
			return fmt.Errorf("%s: %d error(s)", path, len(errs))
		},
	}
}

// --- Try ---

func (a *app) tryCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "try",
		Short: "Experiment with a filter interactively over sample records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger(cmd)
			f, err := a.resolveFilter(cmd, logger)
			if err != nil {
				return err
			}
			records, err := readRecords(input, logger)
			if err != nil {
				return err
			}

			m := tuimodel.New(records, f)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "JSON-lines file with sample records")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// --- Version ---

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "logsift %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		},
	}
}
