package conventional

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grovetools/git-log-pretty/errors"
)

// Commit represents a parsed conventional commit message.
type Commit struct {
	Type        string
	Scope       string
	Description string
	Body        string
	IsBreaking  bool
}

// DefaultPattern matches "type(scope): description" headers.
// It captures: 1: type (letters only), 2: scope (optional), 3: description
// including any whitespace after the colon.
const DefaultPattern = `^([A-Za-z]+)(?:\(([^)]+)\))?:(.*)$`

// DefaultRegexp is DefaultPattern compiled.
var DefaultRegexp = regexp.MustCompile(DefaultPattern)

// Compile compiles a custom header pattern. It must expose at least the
// type, scope and description capture groups, in that order.
func Compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return DefaultRegexp, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid commit pattern").
			WithDetail("pattern", pattern)
	}
	if re.NumSubexp() < 3 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("commit pattern needs 3 capture groups (type, scope, description), has %d", re.NumSubexp())).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

// Parse parses a raw git commit message against re.
func Parse(message string, re *regexp.Regexp) (*Commit, error) {
	lines := strings.SplitN(strings.TrimSpace(message), "\n", 2)
	header := strings.TrimSpace(lines[0])

	matches := re.FindStringSubmatch(header)
	if len(matches) < 4 || matches[1] == "" {
		return nil, fmt.Errorf("invalid commit message format: %s", header)
	}

	commit := &Commit{
		Type:        matches[1],
		Scope:       matches[2],
		Description: matches[3],
	}

	if len(lines) > 1 {
		body := strings.TrimSpace(lines[1])
		if strings.Contains(body, "BREAKING CHANGE:") || strings.Contains(body, "BREAKING-CHANGE:") {
			commit.IsBreaking = true
		}
		commit.Body = body
	}

	return commit, nil
}
