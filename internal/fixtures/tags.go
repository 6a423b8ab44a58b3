package fixtures

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// TagFilter selects tests by matching a grep expression against the test
// title followed by its tags, e.g. "verify product header MacBook Pro @product @sanity".
type TagFilter struct {
	grep   *regexp.Regexp
	invert *regexp.Regexp
}

// NewTagFilter compiles the include and exclude expressions. Empty
// expressions do not filter.
func NewTagFilter(grep, grepInvert string) (*TagFilter, error) {
	f := &TagFilter{}
	var err error
	if grep != "" {
		if f.grep, err = regexp.Compile(grep); err != nil {
			return nil, fmt.Errorf("invalid grep %q: %w", grep, err)
		}
	}
	if grepInvert != "" {
		if f.invert, err = regexp.Compile(grepInvert); err != nil {
			return nil, fmt.Errorf("invalid grep-invert %q: %w", grepInvert, err)
		}
	}
	return f, nil
}

// Match reports whether a test with this title and tags should run.
func (f *TagFilter) Match(title string, tags ...string) bool {
	subject := Subject(title, tags...)
	if f.grep != nil && !f.grep.MatchString(subject) {
		return false
	}
	if f.invert != nil && f.invert.MatchString(subject) {
		return false
	}
	return true
}

// Subject is the string a TagFilter matches against. Tags are given an @
// prefix if they lack one and duplicates are dropped.
func Subject(title string, tags ...string) string {
	normalized := lo.Uniq(lo.Map(tags, func(tag string, _ int) string {
		tag = strings.TrimSpace(tag)
		if !strings.HasPrefix(tag, "@") {
			tag = "@" + tag
		}
		return tag
	}))
	return strings.TrimSpace(strings.Join(append([]string{title}, normalized...), " "))
}
