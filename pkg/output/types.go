// Package output provides formatting for timeline reports.
package output

import (
	"time"

	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/timeline"
)

// Report is the complete timeline output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Entries are the selected timeline rows, oldest first.
	Entries []classifier.Entry

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// MatcherSet is the name of the matcher set that was applied.
	MatcherSet string

	// Selected is the number of entries in the report.
	Selected int

	// TotalMatches is the number of matches before the count limit.
	TotalMatches int

	// FilesRead is the number of log files read.
	FilesRead int

	// LinesProcessed is the total number of log lines examined.
	LinesProcessed int
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the configuration file used, empty for built-in defaults.
	ConfigFile string

	// Sources lists the log files read, oldest first.
	Sources []string

	// Count is the requested number of entries (0 means all).
	Count int

	// GeneratedAt is when the timeline was built.
	GeneratedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewReport creates a Report from a timeline result.
func NewReport(result *timeline.Result, configFile string) *Report {
	return &Report{
		Entries: result.Entries,
		Metadata: Metadata{
			ConfigFile:  configFile,
			Sources:     result.Metadata.Sources,
			Count:       result.Metadata.Count,
			GeneratedAt: result.Metadata.EndTime,
			Duration:    result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
		Summary: Summary{
			MatcherSet:     result.Metadata.MatcherSet,
			Selected:       len(result.Entries),
			TotalMatches:   result.Metadata.TotalMatches,
			FilesRead:      len(result.Metadata.Sources),
			LinesProcessed: result.Metadata.LinesProcessed,
		},
	}
}
