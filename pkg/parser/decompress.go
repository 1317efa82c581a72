package parser

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type decoder func(io.Reader) (io.Reader, error)

// decoders maps a lower-cased file extension to its decompressor.
var decoders = map[string]decoder{
	".gz": func(r io.Reader) (io.Reader, error) {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	},
	".bz2": func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	},
}

// ReadError reports a log file that could not be opened, read or decompressed.
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s log file %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsCompressed reports whether path carries a supported compression suffix.
// The check is case-insensitive.
func IsCompressed(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedCompression returns the compression suffixes Open can decode,
// without the leading dot.
func SupportedCompression() []string {
	return []string{"gz", "bz2"}
}

// Open opens a log file for reading, transparently decompressing it when the
// name ends in a supported compression suffix. Closing the returned reader
// releases the decompressor and the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &ReadError{Path: path, Op: "opening", Err: err}
	}

	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return f, nil
	}

	r, err := dec(f)
	if err != nil {
		_ = f.Close()
		return nil, &ReadError{Path: path, Op: "decompressing", Err: err}
	}

	rc := &stackedReader{Reader: r, closers: []io.Closer{f}}
	if c, ok := r.(io.Closer); ok {
		rc.closers = []io.Closer{c, f}
	}
	return rc, nil
}

// stackedReader reads from a decompressor and closes every layer beneath it.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
