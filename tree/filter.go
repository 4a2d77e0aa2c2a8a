package tree

import (
	"fmt"

	"github.com/moby/patternmatcher"
)

// Filter drops paths matching dockerignore-style exclude patterns.
type Filter struct {
	matcher *patternmatcher.PatternMatcher
}

// NewFilter compiles patterns. With no patterns the filter keeps everything.
func NewFilter(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		return &Filter{}, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("compile exclude patterns: %w", err)
	}
	return &Filter{matcher: pm}, nil
}

// Apply returns the paths that are not excluded and how many were dropped.
func (f *Filter) Apply(paths []string) (kept []string, excluded int) {
	if f == nil || f.matcher == nil {
		return paths, 0
	}
	kept = make([]string, 0, len(paths))
	for _, p := range paths {
		matched, err := f.matcher.MatchesOrParentMatches(p)
		if err == nil && matched {
			excluded++
			continue
		}
		kept = append(kept, p)
	}
	return kept, excluded
}
