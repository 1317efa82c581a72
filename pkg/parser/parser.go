package parser

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
)

const maxLineSize = 1024 * 1024

// FileSource implements LineSource over a sequence of log files, read in the
// order given. Compressed files are decompressed as they are read.
type FileSource struct {
	files  []string
	logger *slog.Logger

	current        io.ReadCloser
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// FileSourceOption configures a FileSource.
type FileSourceOption func(*FileSource)

// WithLogger attaches a logger for per-file debug records.
func WithLogger(logger *slog.Logger) FileSourceOption {
	return func(s *FileSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileSource creates a LineSource that reads from the given files.
func NewFileSource(files []string, opts ...FileSourceOption) *FileSource {
	s := &FileSource{
		files:     files,
		logger:    slog.New(slog.DiscardHandler),
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next log line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			return &LogLine{
				Content: s.currentScanner.Text(),
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, &ReadError{Path: s.currentSource, Op: "reading", Err: err}
		}

		// Current file exhausted, try next
		s.logger.Debug("finished log file", "path", s.currentSource, "lines", s.currentLine)
		if err := s.closeCurrentFile(); err != nil {
			return nil, &ReadError{Path: s.currentSource, Op: "closing", Err: err}
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	info, err := os.Stat(path)
	if err != nil {
		return &ReadError{Path: path, Op: "opening", Err: err}
	}

	rc, err := Open(path)
	if err != nil {
		return err
	}

	s.logger.Debug("reading log file",
		"path", path,
		"size", humanize.Bytes(uint64(info.Size())),
		"compressed", IsCompressed(path))

	s.current = rc
	s.currentScanner = newScanner(rc)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		s.currentScanner = nil
		return err
	}
	return nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}
