package display

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/grovetools/git-log-pretty/conventional"
	"github.com/grovetools/git-log-pretty/git"
	"github.com/grovetools/git-log-pretty/util/reltime"
)

// CommitReport is the JSON form of one displayed commit.
type CommitReport struct {
	Hash        string    `json:"hash"`
	ShortHash   string    `json:"short_hash"`
	Summary     string    `json:"summary"`
	Type        string    `json:"type,omitempty"`
	Scope       string    `json:"scope,omitempty"`
	Description string    `json:"description,omitempty"`
	Breaking    bool      `json:"breaking,omitempty"`
	Author      string    `json:"author"`
	Time        time.Time `json:"time"`
	Relative    string    `json:"relative_time"`
	Files       []string  `json:"files"`
}

// LogReport is the --json output of the log view.
type LogReport struct {
	Base    string         `json:"base"`
	Head    string         `json:"head"`
	Total   int            `json:"total"`
	Shown   int            `json:"shown"`
	Commits []CommitReport `json:"commits"`
}

// DiffReport is the --json output of the diff command.
type DiffReport struct {
	Base     string   `json:"base"`
	Head     string   `json:"head"`
	Files    []string `json:"files"`
	Excluded int      `json:"excluded"`
}

// NewCommitReport describes c. Conventional fields are filled when the
// message matches pattern.
func NewCommitReport(c *git.Commit, files []string, pattern *regexp.Regexp, now time.Time) CommitReport {
	if pattern == nil {
		pattern = conventional.DefaultRegexp
	}
	if files == nil {
		files = []string{}
	}
	r := CommitReport{
		Hash:      c.Hash,
		ShortHash: c.ShortHash,
		Summary:   c.Summary,
		Author:    c.Author,
		Time:      c.When,
		Relative:  reltime.Format(c.When, now),
		Files:     files,
	}
	if parsed, err := conventional.Parse(c.Message, pattern); err == nil {
		r.Type = parsed.Type
		r.Scope = parsed.Scope
		r.Description = strings.TrimSpace(parsed.Description)
		r.Breaking = parsed.IsBreaking
	}
	return r
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
