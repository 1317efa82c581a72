package classifier

import (
	"slices"
	"testing"
)

func TestDefaultSets(t *testing.T) {
	sets := DefaultSets()

	tests := []struct {
		name string
		want []string
	}{
		{SetAll, []string{CategoryInstalled, CategoryNotInstalled, CategoryRemove, CategoryInstall, CategoryPurge}},
		{SetCommandCode, []string{CategoryRemove, CategoryInstall, CategoryPurge}},
		{SetStatusCode, []string{CategoryInstalled, CategoryNotInstalled}},
	}

	if len(sets) != len(tests) {
		t.Errorf("DefaultSets() has %d sets, want %d", len(sets), len(tests))
	}
	for _, tt := range tests {
		set, ok := sets[tt.name]
		if !ok {
			t.Errorf("DefaultSets() missing %q", tt.name)
			continue
		}
		if set.Name != tt.name {
			t.Errorf("set.Name = %q, want %q", set.Name, tt.name)
		}
		if got := set.Categories(); !slices.Equal(got, tt.want) {
			t.Errorf("%s categories = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultPatterns_Match(t *testing.T) {
	sets := DefaultSets()
	byCategory := make(map[string]Matcher)
	for _, m := range sets[SetAll].Matchers {
		byCategory[m.Category] = m
	}

	tests := []struct {
		category string
		line     string
		want     bool
	}{
		{CategoryInstalled, "2024-01-01 10:00:00 status installed foo:amd64 1.0", true},
		{CategoryInstalled, "2024-01-01 10:00:00 status half-installed foo:amd64 1.0", false},
		{CategoryNotInstalled, "2024-01-01 10:00:00 status not-installed foo:amd64 <none>", true},
		{CategoryRemove, "2024-01-01 10:00:00 remove foo:amd64 1.0 <none>", true},
		{CategoryRemove, "2024-01-01 10:00:00 status config-files foo:amd64 1.0", false},
		{CategoryInstall, "2024-01-01 10:00:00 install foo:amd64 <none> 1.0", true},
		{CategoryInstall, "2024-01-01 10:00:00 status installed foo:amd64 1.0", false},
		{CategoryPurge, "2024-01-01 10:00:00 purge foo:amd64 1.0 <none>", true},
		{CategoryPurge, "2024-01-01 10:00:00 purge", false},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.line, func(t *testing.T) {
			if got := byCategory[tt.category].Match(tt.line); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewMatcher("broken", `[unterminated`); err == nil {
		t.Error("NewMatcher() expected error for invalid pattern")
	}
}

func TestMustMatcher_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustMatcher() did not panic on invalid pattern")
		}
	}()
	MustMatcher("broken", `(`)
}
