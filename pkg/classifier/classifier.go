package classifier

import (
	"context"
	"errors"
	"io"

	"github.com/ccollicutt/dpkgtimeline/pkg/parser"
)

// Entry is one timeline row: a matched line, the category that matched it,
// and where it was read from.
type Entry struct {
	Line     string
	Category string
	Source   string
	LineNum  int
}

// Classify walks files in order and each file's lines in order, appending a
// line once for every matcher in set that matches it. A line hit by two
// matchers therefore appears twice.
func Classify(files [][]string, set Set) []string {
	matched := []string{}
	for _, lines := range files {
		for _, line := range lines {
			for _, m := range set.Matchers {
				if m.Match(line) {
					matched = append(matched, line)
				}
			}
		}
	}
	return matched
}

// ClassifySource applies the same rules as Classify to a streaming source,
// keeping provenance and the matching category for each entry. It also
// returns the number of lines read.
func ClassifySource(ctx context.Context, src parser.LineSource, set Set) ([]Entry, int, error) {
	entries := []Entry{}
	processed := 0
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return entries, processed, nil
		}
		if err != nil {
			return nil, processed, err
		}
		processed++

		for _, m := range set.Matchers {
			if m.Match(line.Content) {
				entries = append(entries, Entry{
					Line:     line.Content,
					Category: m.Category,
					Source:   line.Source,
					LineNum:  line.LineNum,
				})
			}
		}
	}
}

// Lines projects entries to their line text.
func Lines(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return lines
}
