package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/parser"
	"github.com/ccollicutt/dpkgtimeline/pkg/rotation"
)

// ErrUnknownMatcherSet is returned when a requested matcher set is not defined.
var ErrUnknownMatcherSet = errors.New("unknown matcher set")

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	defaults := cfg.Matchers
	cfg.Matchers = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Matchers = mergeMatchers(defaults, cfg.Matchers)

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the validated built-in configuration with environment
// overrides applied. It is used when no config file is given.
func Default(_ context.Context) (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and compiles matcher sets.
func Validate(cfg *Config) error {
	if len(cfg.LogSources) == 0 {
		return errors.New("log_sources: at least one log source is required")
	}
	for i, s := range cfg.LogSources {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("log_sources[%d]: must not be empty", i)
		}
	}

	if cfg.LiveSuffix == "" {
		return errors.New("live_suffix: is required")
	}
	if strings.Contains(cfg.LiveSuffix, ".") {
		return fmt.Errorf("live_suffix: %q must be a single name segment", cfg.LiveSuffix)
	}

	for i, s := range cfg.CompressionSuffixes {
		if !isSupportedCompression(s) {
			return fmt.Errorf("compression_suffixes[%d]: unsupported suffix %q (supported: %s)",
				i, s, strings.Join(parser.SupportedCompression(), ", "))
		}
	}

	matchers := make(map[string]classifier.Matcher, len(cfg.Matchers))
	for i := range cfg.Matchers {
		m := &cfg.Matchers[i]
		if err := validateMatcher(m); err != nil {
			return fmt.Errorf("matchers[%d] (%s): %w", i, m.Name, err)
		}
		if _, dup := matchers[m.Name]; dup {
			return fmt.Errorf("matchers[%d]: duplicate name %q", i, m.Name)
		}
		matchers[m.Name] = classifier.Matcher{Category: m.Name, Pattern: m.compiledPattern}
	}

	if len(cfg.MatcherSets) == 0 {
		return errors.New("matcher_sets: at least one matcher set is required")
	}

	sets := make(map[string]classifier.Set, len(cfg.MatcherSets))
	for name, members := range cfg.MatcherSets {
		if name == "" {
			return errors.New("matcher_sets: set name must not be empty")
		}
		set := classifier.Set{Name: name, Matchers: make([]classifier.Matcher, 0, len(members))}
		for _, member := range members {
			m, ok := matchers[member]
			if !ok {
				return fmt.Errorf("matcher_sets.%s: unknown matcher %q", name, member)
			}
			set.Matchers = append(set.Matchers, m)
		}
		sets[name] = set
	}
	cfg.sets = sets

	if err := validateLogging(cfg); err != nil {
		return err
	}

	return nil
}

func validateMatcher(m *MatcherConfig) error {
	if m.Name == "" {
		return errors.New("name is required")
	}

	if m.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err := regexp.Compile(m.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	m.compiledPattern = re

	return nil
}

func validateLogging(cfg *Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: invalid value %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format: invalid value %q (must be text or json)", cfg.LogFormat)
	}

	return nil
}

func isSupportedCompression(suffix string) bool {
	for _, s := range parser.SupportedCompression() {
		if strings.EqualFold(s, suffix) {
			return true
		}
	}
	return false
}

// MatcherSet returns the compiled matcher set with the given name.
// The config must have passed Validate.
func (c *Config) MatcherSet(name string) (classifier.Set, error) {
	set, ok := c.sets[name]
	if !ok {
		return classifier.Set{}, fmt.Errorf("%w %q (available: %s)",
			ErrUnknownMatcherSet, name, strings.Join(c.SetNames(), ", "))
	}
	return set, nil
}

// SetNames returns the names of all matcher sets, sorted.
func (c *Config) SetNames() []string {
	names := make([]string, 0, len(c.MatcherSets))
	for name := range c.MatcherSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RotationOptions returns the file naming scheme used to rank log files.
func (c *Config) RotationOptions() rotation.Options {
	return rotation.Options{
		LiveSuffix:         c.LiveSuffix,
		CompressedSuffixes: append([]string(nil), c.CompressionSuffixes...),
	}
}
