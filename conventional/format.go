package conventional

import (
	"regexp"

	"github.com/grovetools/git-log-pretty/tui/theme"
)

// FormatSummary styles a one-line summary. When it matches re, the type is
// drawn as a colored badge, the scope (if any) follows after a space in the
// muted color, and the description is appended untouched. Summaries that do
// not match are returned verbatim.
func FormatSummary(summary string, re *regexp.Regexp, t *theme.Theme) string {
	matches := re.FindStringSubmatch(summary)
	if len(matches) < 4 || matches[1] == "" {
		return summary
	}
	typ, scope, description := matches[1], matches[2], matches[3]

	badge := t.Badge(typ).Render(typ)
	if scope == "" {
		return badge + description
	}
	return badge + " " + t.Scope.Render(scope) + description
}
