package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/rotation"
)

// Default values for configuration.
const (
	DefaultLogSource = "/var/log/dpkg.*"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Environment variable names.
const (
	EnvLogSources = "DPKGTIMELINE_LOG_SOURCES"
	EnvLogLevel   = "DPKGTIMELINE_LOG_LEVEL"
)

// DefaultConfig returns a configuration with the built-in dpkg patterns.
func DefaultConfig() *Config {
	cfg := &Config{
		LogSources:          []string{DefaultLogSource},
		LiveSuffix:          rotation.DefaultLiveSuffix,
		CompressionSuffixes: append([]string(nil), rotation.DefaultCompressedSuffixes...),
		Matchers:            defaultMatchers(),
		MatcherSets:         make(map[string][]string, len(classifier.DefaultSetMembers)),
		LogLevel:            DefaultLogLevel,
		LogFormat:           DefaultLogFormat,
	}
	for name, members := range classifier.DefaultSetMembers {
		cfg.MatcherSets[name] = append([]string(nil), members...)
	}
	return cfg
}

func defaultMatchers() []MatcherConfig {
	matchers := make([]MatcherConfig, 0, len(classifier.DefaultPatterns))
	for _, p := range classifier.DefaultPatterns {
		matchers = append(matchers, MatcherConfig{Name: p.Category, Pattern: p.Expr})
	}
	return matchers
}

// mergeMatchers overlays configured matchers on the defaults by name. Built-in
// order is kept; new names are appended in the order given.
func mergeMatchers(defaults, overrides []MatcherConfig) []MatcherConfig {
	merged := append([]MatcherConfig(nil), defaults...)
	index := make(map[string]int, len(merged))
	for i, m := range merged {
		index[m.Name] = i
	}
	for _, m := range overrides {
		if i, ok := index[m.Name]; ok {
			merged[i] = m
			continue
		}
		index[m.Name] = len(merged)
		merged = append(merged, m)
	}
	return merged
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvLogSources); sources != "" {
		var globs []string
		for _, s := range filepath.SplitList(sources) {
			if s = strings.TrimSpace(s); s != "" {
				globs = append(globs, s)
			}
		}
		if len(globs) > 0 {
			c.LogSources = globs
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
}
