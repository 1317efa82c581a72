// Package classifier selects dpkg log lines that match named pattern sets.
package classifier

import (
	"fmt"
	"regexp"
)

// Matcher categories.
const (
	CategoryInstalled    = "installed"
	CategoryNotInstalled = "not-installed"
	CategoryRemove       = "remove"
	CategoryInstall      = "install"
	CategoryPurge        = "purge"
)

// Built-in matcher set names.
const (
	SetAll         = "all"
	SetCommandCode = "command_code"
	SetStatusCode  = "status_code"
)

// Pattern pairs a category with its regular expression source.
type Pattern struct {
	Category string
	Expr     string
}

// DefaultPatterns is the built-in pattern table, in evaluation order.
// Each expression matches anywhere in a line.
var DefaultPatterns = []Pattern{
	{CategoryInstalled, `status installed`},
	{CategoryNotInstalled, `status not-installed`},
	{CategoryRemove, `remove `},
	{CategoryInstall, `install `},
	{CategoryPurge, `purge `},
}

// DefaultSetMembers lists the categories of each built-in set, in order.
var DefaultSetMembers = map[string][]string{
	SetAll:         {CategoryInstalled, CategoryNotInstalled, CategoryRemove, CategoryInstall, CategoryPurge},
	SetCommandCode: {CategoryRemove, CategoryInstall, CategoryPurge},
	SetStatusCode:  {CategoryInstalled, CategoryNotInstalled},
}

// Matcher classifies a line into a category when its pattern matches
// somewhere in the line.
type Matcher struct {
	Category string
	Pattern  *regexp.Regexp
}

// NewMatcher compiles expr into a Matcher for category.
func NewMatcher(category, expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("compiling %s pattern: %w", category, err)
	}
	return Matcher{Category: category, Pattern: re}, nil
}

// MustMatcher is like NewMatcher but panics on an invalid expression.
func MustMatcher(category, expr string) Matcher {
	m, err := NewMatcher(category, expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether line belongs to the matcher's category.
func (m Matcher) Match(line string) bool {
	return m.Pattern.MatchString(line)
}

// Set is a named, ordered group of matchers. Only one set is active per run.
type Set struct {
	Name     string
	Matchers []Matcher
}

// Categories returns the category of each matcher in order.
func (s Set) Categories() []string {
	cats := make([]string, len(s.Matchers))
	for i, m := range s.Matchers {
		cats[i] = m.Category
	}
	return cats
}

// DefaultSets compiles the built-in pattern table into the built-in sets.
func DefaultSets() map[string]Set {
	byCategory := make(map[string]Matcher, len(DefaultPatterns))
	for _, p := range DefaultPatterns {
		byCategory[p.Category] = MustMatcher(p.Category, p.Expr)
	}

	sets := make(map[string]Set, len(DefaultSetMembers))
	for name, members := range DefaultSetMembers {
		set := Set{Name: name, Matchers: make([]Matcher, 0, len(members))}
		for _, c := range members {
			set.Matchers = append(set.Matchers, byCategory[c])
		}
		sets[name] = set
	}
	return sets
}
