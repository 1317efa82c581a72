// Package config provides configuration loading and validation for dpkgtimeline.
package config

import (
	"regexp"

	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// LogSources are globs locating the live log and its rotated siblings.
	LogSources []string `yaml:"log_sources"`

	// LiveSuffix is the final name segment of the live log.
	LiveSuffix string `yaml:"live_suffix"`

	// CompressionSuffixes are final name segments marking compressed rotations.
	CompressionSuffixes []string `yaml:"compression_suffixes"`

	// Matchers are named patterns. Entries override built-ins by name.
	Matchers []MatcherConfig `yaml:"matchers,omitempty"`

	// MatcherSets group matchers by name. Sets named here replace built-ins
	// of the same name.
	MatcherSets map[string][]string `yaml:"matcher_sets,omitempty"`

	// ClampCount returns every match instead of failing when the requested
	// count exceeds the number of matches.
	ClampCount bool `yaml:"clamp_count,omitempty"`

	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`

	// sets holds compiled matcher sets (populated during validation).
	sets map[string]classifier.Set
}

// MatcherConfig defines a single named pattern.
type MatcherConfig struct {
	// Name is the category reported for lines this pattern matches.
	Name string `yaml:"name"`

	// Pattern is a regular expression that must match somewhere in a line.
	Pattern string `yaml:"pattern"`

	// compiledPattern is the pre-compiled regex (populated during validation).
	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled regex pattern.
func (m *MatcherConfig) CompiledPattern() *regexp.Regexp {
	return m.compiledPattern
}
