// Package timeline reconstructs the chronological package event history from
// a live dpkg log and its rotated siblings.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ccollicutt/dpkgtimeline/internal/logging"
	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/config"
	"github.com/ccollicutt/dpkgtimeline/pkg/parser"
	"github.com/ccollicutt/dpkgtimeline/pkg/rotation"
)

// Builder runs the rank, read, classify and select pipeline for one matcher set.
type Builder struct {
	set      classifier.Set
	rotation rotation.Options
	logger   *slog.Logger

	// Options
	setName string
	count   int
	clamp   bool
}

// Option configures builder behavior.
type Option func(*Builder)

// WithMatcherSet selects the matcher set by name (default "all").
func WithMatcherSet(name string) Option {
	return func(b *Builder) {
		if name != "" {
			b.setName = name
		}
	}
}

// WithCount limits the result to the last n entries. Zero means all.
func WithCount(n int) Option {
	return func(b *Builder) {
		b.count = n
	}
}

// WithClamp controls what happens when the count exceeds the matches.
func WithClamp(clamp bool) Option {
	return func(b *Builder) {
		b.clamp = clamp
	}
}

// WithLogger sets the logger for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a builder from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Builder, error) {
	b := &Builder{
		rotation: cfg.RotationOptions(),
		logger:   logging.NewNop(),
		setName:  classifier.SetAll,
		clamp:    cfg.ClampCount,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", b.count)
	}

	set, err := cfg.MatcherSet(b.setName)
	if err != nil {
		return nil, err
	}
	b.set = set

	return b, nil
}

// Result is the selected timeline and context about how it was built.
type Result struct {
	// Entries are the selected matches, oldest first.
	Entries []classifier.Entry

	// Metadata provides context about the run.
	Metadata Metadata
}

// Metadata provides context about a timeline run.
type Metadata struct {
	// MatcherSet is the name of the active matcher set.
	MatcherSet string

	// Sources lists the log files read, oldest first.
	Sources []string

	// Count is the requested number of entries (0 means all).
	Count int

	// TotalMatches is the number of matches before selection.
	TotalMatches int

	// LinesProcessed is the number of log lines examined.
	LinesProcessed int

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// Lines returns the text of each selected entry.
func (r *Result) Lines() []string {
	return classifier.Lines(r.Entries)
}

// Build ranks paths oldest first, streams every file through the classifier
// and selects the requested tail. Nothing is returned on failure, so callers
// never print a partial timeline.
func (b *Builder) Build(ctx context.Context, paths []string) (*Result, error) {
	result := &Result{
		Metadata: Metadata{
			MatcherSet: b.set.Name,
			Count:      b.count,
			StartTime:  time.Now(),
		},
	}

	files, err := rotation.Rank(paths, b.rotation)
	if err != nil {
		return nil, fmt.Errorf("ranking log files: %w", err)
	}
	result.Metadata.Sources = rotation.Paths(files)
	b.logger.Debug("ranked log files", "count", len(files), "order", result.Metadata.Sources)

	source := parser.NewFileSource(result.Metadata.Sources, parser.WithLogger(b.logger))
	defer source.Close()

	entries, processed, err := classifier.ClassifySource(ctx, source, b.set)
	if err != nil {
		return nil, fmt.Errorf("reading log files: %w", err)
	}
	result.Metadata.LinesProcessed = processed
	result.Metadata.TotalMatches = len(entries)

	selected, err := Select(entries, b.count, b.clamp)
	if err != nil {
		return nil, err
	}
	result.Entries = selected
	result.Metadata.EndTime = time.Now()

	b.logger.Debug("timeline built",
		"matcher_set", b.set.Name,
		"lines", processed,
		"matches", len(entries),
		"selected", len(selected),
		"duration", result.Metadata.EndTime.Sub(result.Metadata.StartTime))

	return result, nil
}
