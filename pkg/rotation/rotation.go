// Package rotation orders a live log file and its rotated siblings by age.
//
// Log rotation numbers older files with larger integers: dpkg.log is the live
// file, dpkg.log.1 the previous one, dpkg.log.2.gz the one before that, and
// so on. Rank turns an unordered set of such paths into oldest-first order.
package rotation

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Default suffix markers.
const (
	DefaultLiveSuffix = "log"
)

// DefaultCompressedSuffixes lists the compression markers recognized by default.
var DefaultCompressedSuffixes = []string{"gz", "bz2"}

// Options controls how rotation indices are derived from file names.
type Options struct {
	// LiveSuffix marks the live, never-rotated log (index 0).
	LiveSuffix string

	// CompressedSuffixes are final name segments that mark a compressed
	// rotation; the index is then taken from the segment before it.
	CompressedSuffixes []string
}

// DefaultOptions returns the dpkg/logrotate naming scheme.
func DefaultOptions() Options {
	return Options{
		LiveSuffix:         DefaultLiveSuffix,
		CompressedSuffixes: slices.Clone(DefaultCompressedSuffixes),
	}
}

// LogFile is a log path with its derived rotation index.
type LogFile struct {
	// Path is the file system path as supplied by the caller.
	Path string

	// Index is 0 for the live file and N for the Nth rotation.
	Index int

	// Compressed is true when the name ends in a compression suffix.
	Compressed bool
}

var errNegativeIndex = errors.New("negative rotation index")

// ParseError reports a file name whose rotation segment is not an integer.
type ParseError struct {
	Path    string
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing rotation index of %s: segment %q is not a non-negative integer", e.Path, e.Segment)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Index derives the rotation index of a single path.
func Index(path string, opts Options) (LogFile, error) {
	segments := strings.Split(filepath.Base(path), ".")
	last := segments[len(segments)-1]

	lf := LogFile{Path: path}
	segment := last

	switch {
	case opts.isCompressed(last):
		lf.Compressed = true
		if len(segments) < 2 {
			return LogFile{}, &ParseError{Path: path, Segment: "", Err: strconv.ErrSyntax}
		}
		segment = segments[len(segments)-2]
	case strings.EqualFold(last, opts.LiveSuffix):
		return lf, nil
	}

	n, err := strconv.Atoi(segment)
	if err != nil || n < 0 {
		if err == nil {
			err = errNegativeIndex
		}
		return LogFile{}, &ParseError{Path: path, Segment: segment, Err: err}
	}
	lf.Index = n
	return lf, nil
}

// Rank derives the rotation index of every path and returns the files ordered
// oldest first: highest index first, the live file last. Files sharing an
// index are ordered by path, descending.
//
// The first path that fails to parse aborts the ranking.
func Rank(paths []string, opts Options) ([]LogFile, error) {
	files := make([]LogFile, 0, len(paths))
	for _, p := range paths {
		lf, err := Index(p, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, lf)
	}

	slices.SortStableFunc(files, compareAge)
	return files, nil
}

// compareAge orders older files first.
func compareAge(a, b LogFile) int {
	if a.Index != b.Index {
		return b.Index - a.Index
	}
	return strings.Compare(b.Path, a.Path)
}

// Paths returns the paths of files in order.
func Paths(files []LogFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func (o Options) isCompressed(segment string) bool {
	for _, s := range o.CompressedSuffixes {
		if strings.EqualFold(segment, s) {
			return true
		}
	}
	return false
}
