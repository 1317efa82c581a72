package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter prints one matched log line per output line.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return formatSummaryLine(report, w)
	}

	for _, e := range report.Entries {
		if _, err := fmt.Fprintln(w, e.Line); err != nil {
			return err
		}
	}
	return nil
}

func formatSummaryLine(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "dpkgtimeline: %d of %d matches (%s) from %d lines in %d files\n",
		report.Summary.Selected,
		report.Summary.TotalMatches,
		report.Summary.MatcherSet,
		report.Summary.LinesProcessed,
		report.Summary.FilesRead)
	return err
}
