package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/dpkgtimeline/pkg/classifier"
	"github.com/ccollicutt/dpkgtimeline/pkg/timeline"
)

func createTestReport() *Report {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	result := &timeline.Result{
		Entries: []classifier.Entry{
			{Line: "2024-02-01 09:00:00 remove bar:amd64 2.0 <none>", Category: classifier.CategoryRemove, Source: "/var/log/dpkg.log.1", LineNum: 1},
			{Line: "2024-02-01 09:00:01 status not-installed bar:amd64 <none>", Category: classifier.CategoryNotInstalled, Source: "/var/log/dpkg.log.1", LineNum: 2},
			{Line: "2024-03-01 08:00:00 purge baz:amd64 3.0 <none>", Category: classifier.CategoryPurge, Source: "/var/log/dpkg.log", LineNum: 1},
		},
		Metadata: timeline.Metadata{
			MatcherSet:     classifier.SetAll,
			Sources:        []string{"/var/log/dpkg.log.1", "/var/log/dpkg.log"},
			Count:          3,
			TotalMatches:   5,
			LinesProcessed: 42,
			StartTime:      start,
			EndTime:        start.Add(15 * time.Millisecond),
		},
	}
	return NewReport(result, "")
}

func TestNewReport(t *testing.T) {
	report := createTestReport()

	if report.Summary.Selected != 3 {
		t.Errorf("Selected = %d, want 3", report.Summary.Selected)
	}
	if report.Summary.TotalMatches != 5 {
		t.Errorf("TotalMatches = %d, want 5", report.Summary.TotalMatches)
	}
	if report.Summary.FilesRead != 2 {
		t.Errorf("FilesRead = %d, want 2", report.Summary.FilesRead)
	}
	if report.Metadata.Duration != 15*time.Millisecond {
		t.Errorf("Duration = %v, want 15ms", report.Metadata.Duration)
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want text", f.Name())
	}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2024-02-01 09:00:00 remove bar:amd64 2.0 <none>\n" +
		"2024-02-01 09:00:01 status not-installed bar:amd64 <none>\n" +
		"2024-03-01 08:00:00 purge baz:amd64 3.0 <none>\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), &Report{}, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format() wrote %q for an empty report", buf.String())
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("Quiet output has %d lines, want 1", len(lines))
	}
	if !strings.Contains(buf.String(), "3 of 5 matches (all)") {
		t.Errorf("Quiet output = %q", buf.String())
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want json", f.Name())
	}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(parsed.Entries) != 3 {
		t.Fatalf("Entries = %d, want 3", len(parsed.Entries))
	}
	if parsed.Entries[2].Category != classifier.CategoryPurge {
		t.Errorf("Entries[2].Category = %q, want purge", parsed.Entries[2].Category)
	}
	if parsed.Summary.MatcherSet != classifier.SetAll {
		t.Errorf("MatcherSet = %q, want all", parsed.Summary.MatcherSet)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.TotalMatches != 5 {
		t.Errorf("TotalMatches = %d, want 5", parsed.TotalMatches)
	}
	if strings.Contains(buf.String(), "Entries") {
		t.Error("Quiet JSON output should not include entries")
	}
}

func TestTableFormatter_Format(t *testing.T) {
	f := NewTableFormatter(FormatOptions{})
	if f.Name() != "table" {
		t.Errorf("Name() = %q, want table", f.Name())
	}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Not-", "Remove", "dpkg.log.1", "purge baz:amd64", "3 of 5 matches (all)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("table output contains ANSI codes without Color")
	}
	if strings.Contains(out, "/var/log/") {
		t.Error("table output should show base file names")
	}
}

func TestTableFormatter_Format_Quiet(t *testing.T) {
	f := NewTableFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("Quiet table output = %q, want a single line", buf.String())
	}
}

func TestIsColorEnabled(t *testing.T) {
	if IsColorEnabled(&bytes.Buffer{}) {
		t.Error("IsColorEnabled() = true for a buffer")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsColorEnabled(f) {
		t.Error("IsColorEnabled() = true for a regular file")
	}

	t.Setenv("NO_COLOR", "1")
	if IsColorEnabled(os.Stdout) {
		t.Error("IsColorEnabled() = true with NO_COLOR set")
	}
}
