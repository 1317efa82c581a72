// Package parser reads plain and compressed log files line by line.
package parser

// LogLine is a single raw line with its provenance.
type LogLine struct {
	// Content is the line text without its terminator.
	Content string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}
