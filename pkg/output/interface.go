package output

import (
	"context"
	"io"
)

// Formatter renders a timeline report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, table).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Quiet replaces the entries with a one-line summary.
	Quiet bool

	// Color enables ANSI styling where the format supports it.
	Color bool
}
