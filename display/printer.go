// Package display writes commit lists, diff summaries and their JSON
// equivalents.
package display

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/grovetools/git-log-pretty/conventional"
	"github.com/grovetools/git-log-pretty/git"
	"github.com/grovetools/git-log-pretty/tree"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/grovetools/git-log-pretty/util/reltime"
)

// Printer writes styled output for one command run.
type Printer struct {
	out     io.Writer
	theme   *theme.Theme
	tree    *tree.Renderer
	pattern *regexp.Regexp
	now     func() time.Time
}

// NewPrinter creates a printer. A nil pattern uses the default
// conventional-commit pattern.
func NewPrinter(out io.Writer, t *theme.Theme, r *tree.Renderer, pattern *regexp.Regexp) *Printer {
	if pattern == nil {
		pattern = conventional.DefaultRegexp
	}
	return &Printer{
		out:     out,
		theme:   t,
		tree:    r,
		pattern: pattern,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for relative times.
func (p *Printer) WithClock(now func() time.Time) *Printer {
	p.now = now
	return p
}

// Commit prints the commit line, the tree of its files and a blank line.
func (p *Printer) Commit(c *git.Commit, files []string) {
	fmt.Fprintf(p.out, "  %s %s • %s\n",
		p.theme.Hash.Render(c.ShortHash),
		conventional.FormatSummary(c.Summary, p.pattern, p.theme),
		p.theme.Time.Render(reltime.Format(c.When, p.now())),
	)
	p.Tree(files)
	fmt.Fprintln(p.out)
}

// Tree prints the collapsed tree of paths. Nothing is printed for no paths.
func (p *Printer) Tree(paths []string) {
	for _, line := range p.tree.RenderPaths(paths) {
		fmt.Fprintln(p.out, line)
	}
}

// LogHeader prints the ahead count. When shown < total it notes how many
// commits were left out.
func (p *Printer) LogHeader(total, shown int, base string) {
	fmt.Fprintf(p.out, "%s commits ahead of %s", p.theme.Count.Render(strconv.Itoa(total)), base)
	if hidden := total - shown; hidden > 0 {
		fmt.Fprint(p.out, p.theme.Muted.Render(fmt.Sprintf(" (showing first %d, %d more hidden)", shown, hidden)))
	}
	fmt.Fprint(p.out, "\n\n")
}

// CaughtUp reports that head has nothing on top of base.
func (p *Printer) CaughtUp(base string) {
	fmt.Fprintln(p.out, p.theme.Success.Render("All caught up with "+base))
}

// DiffHeader prints the changed-file count between two refs.
func (p *Printer) DiffHeader(count, excluded int, base, head string) {
	fmt.Fprintf(p.out, "%s files changed in %s...%s",
		p.theme.Count.Render(strconv.Itoa(count)),
		p.theme.Ref.Render(base),
		p.theme.Ref.Render(head),
	)
	if excluded > 0 {
		fmt.Fprint(p.out, p.theme.Muted.Render(fmt.Sprintf(" (%d excluded)", excluded)))
	}
	fmt.Fprint(p.out, "\n\n")
}

// NoChanges reports an empty diff.
func (p *Printer) NoChanges() {
	fmt.Fprintln(p.out, p.theme.Success.Render("No changes found"))
}
