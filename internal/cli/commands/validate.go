package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/dpkgtimeline/pkg/config"
	"github.com/ccollicutt/dpkgtimeline/pkg/parser"
	"github.com/ccollicutt/dpkgtimeline/pkg/rotation"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a dpkgtimeline configuration file without reading any logs.

Checks:
  - YAML syntax
  - Required fields
  - Regex pattern validity
  - Matcher set references
  - Log source file names (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Log sources:  %d pattern(s)\n", len(cfg.LogSources))
	fmt.Fprintf(w, "  Matchers:     %d\n", len(cfg.Matchers))
	fmt.Fprintf(w, "  Matcher sets: %d\n", len(cfg.MatcherSets))

	fmt.Fprintf(w, "\nMatchers:\n")
	for i, m := range cfg.Matchers {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, m.Name, m.Pattern)
	}

	fmt.Fprintf(w, "\nMatcher sets:\n")
	for _, name := range cfg.SetNames() {
		fmt.Fprintf(w, "  %s: %s\n", name, strings.Join(cfg.MatcherSets[name], ", "))
	}

	// Check that log sources exist and rank (warnings only)
	files, err := parser.ExpandGlobs(cfg.LogSources)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Error expanding log source patterns: %v\n", err)
		return nil
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "\nWarning: No files match log source patterns\n")
		return nil
	}

	ranked, err := rotation.Rank(files, cfg.RotationOptions())
	if err != nil {
		fmt.Fprintf(w, "\nWarning: %v\n", err)
		return nil
	}

	fmt.Fprintf(w, "\nLog files matched (oldest first): %d\n", len(ranked))
	for _, f := range ranked {
		fmt.Fprintf(w, "  - %s (rotation %d)\n", f.Path, f.Index)
	}

	return nil
}
