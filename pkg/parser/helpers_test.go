package parser

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

// bzip2Fixture is the bzip2 encoding of bzip2FixtureText.
// The standard library only ships a bzip2 reader, so the bytes are inlined.
var bzip2Fixture = []byte("\x42\x5a\x68\x39\x31\x41\x59\x26\x53\x59\x0b\x0a\x4e\xb4\x00\x00\x16\x59\x80\x00\x10\x40\x03\x75\x15\x26\x27\x8e\x00\x20\x00\x50\xa0\x03\x11\xa6\x9a\x34\x12\xa7\xa4\x9e\x88\xc1\x03\x23\x62\x75\x98\xd1\xce\x3b\x78\x38\x8a\x12\xbc\x2a\x24\x58\x8b\x88\x85\x82\xc3\x17\x1c\xa9\x10\x43\xf5\xa2\x82\x6f\x4c\x19\x52\x16\x85\x90\x6c\xe8\x72\x5f\x21\xb5\x09\xd7\xf1\x77\x24\x53\x85\x09\x00\xb0\xa4\xeb\x40")

const bzip2FixtureText = "2024-01-01 10:00:00 install old:amd64 <none> 1.0\n" +
	"2024-01-01 10:00:01 status installed old:amd64 1.0\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeGzip(t *testing.T, dir, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeBzip2(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, bzip2Fixture, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
