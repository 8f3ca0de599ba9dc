package filters

import (
	"fmt"
	"regexp"
)

// PathFilter decides whether a request path is excluded from analysis.
type PathFilter interface {
	// Ignore reports whether any configured pattern matches the start of path.
	Ignore(path string) bool
}

type pathFilter struct {
	patterns []*regexp.Regexp
}

// NewPathFilter compiles the ignore patterns. Each pattern is anchored at the start
// of the path but not at the end, so "/static/" ignores "/static/app.js".
func NewPathFilter(patterns []string) (PathFilter, error) {
	f := &pathFilter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for i, pattern := range patterns {
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern[%d] %q: %w", i, pattern, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

func (f *pathFilter) Ignore(path string) bool {
	for _, re := range f.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
