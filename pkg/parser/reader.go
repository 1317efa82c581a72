package parser

import (
	"context"
)

// ReadFile reads every line of a plain or compressed log file into memory.
func ReadFile(ctx context.Context, path string) ([]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines := []string{}
	scanner := newScanner(rc)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &ReadError{Path: path, Op: "reading", Err: err}
	}

	return lines, nil
}

// ReadAll reads each file in order and returns one line slice per file.
// Callers pass files oldest first, so the result reads chronologically.
func ReadAll(ctx context.Context, paths []string) ([][]string, error) {
	files := make([][]string, 0, len(paths))
	for _, p := range paths {
		lines, err := ReadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		files = append(files, lines)
	}
	return files, nil
}
