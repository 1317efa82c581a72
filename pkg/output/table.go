package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TableFormatter renders the timeline as a table with provenance columns.
type TableFormatter struct {
	opts  FormatOptions
	title cases.Caser
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{
		opts:  opts,
		title: cases.Title(language.English),
	}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders the report as a table.
func (f *TableFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return formatSummaryLine(report, w)
	}

	tw := table.NewWriter()
	if f.opts.Color {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	tw.AppendHeader(table.Row{"#", "Category", "Source", "Line", "Entry"})
	for i, e := range report.Entries {
		tw.AppendRow(table.Row{
			i + 1,
			f.title.String(e.Category),
			filepath.Base(e.Source),
			strconv.Itoa(e.LineNum),
			e.Line,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.SetCaption("%d of %d matches (%s)", report.Summary.Selected, report.Summary.TotalMatches, report.Summary.MatcherSet)

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// IsColorEnabled reports whether ANSI styling should be written to w.
// It requires w to be a terminal and NO_COLOR to be unset.
func IsColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
