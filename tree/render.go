package tree

import (
	"strings"

	"github.com/grovetools/git-log-pretty/tui/theme"
)

const (
	rootIndent   = "    "
	branchTee    = "├──"
	branchCorner = "└──"
	pipeIndent   = "│    "
	blankIndent  = "     "
)

// IconLookup returns a glyph and #rrggbb color for a file name. An empty
// glyph means no icon is drawn.
type IconLookup interface {
	Icon(name string) (glyph string, color string)
}

// Renderer draws trees with a theme's colors and an icon lookup.
type Renderer struct {
	theme *theme.Theme
	icons IconLookup
}

// NewRenderer creates a tree renderer.
func NewRenderer(t *theme.Theme, icons IconLookup) *Renderer {
	return &Renderer{theme: t, icons: icons}
}

// RenderPaths builds, collapses and renders paths.
func (r *Renderer) RenderPaths(paths []string) []string {
	return r.Render(Collapse(Build(paths)))
}

// Render returns one pre-styled line per node below root, depth first,
// children in name order. An empty tree renders no lines.
func (r *Renderer) Render(root *Node) []string {
	var lines []string
	r.render(root, rootIndent, &lines)
	return lines
}

func (r *Renderer) render(node *Node, prefix string, lines *[]string) {
	names := node.Names()
	for i, name := range names {
		child := node.Children[name]
		last := i == len(names)-1

		glyph := branchTee
		if last {
			glyph = branchCorner
		}

		var b strings.Builder
		b.WriteString(prefix)
		b.WriteString(r.theme.Tree.Render(glyph))
		b.WriteString(" ")
		if child.IsFile {
			b.WriteString(r.fileLabel(name))
		} else {
			b.WriteString(r.theme.Tree.Render(name))
		}
		*lines = append(*lines, b.String())

		if len(child.Children) > 0 {
			next := prefix + blankIndent
			if !last {
				next = prefix + r.theme.Tree.Render(pipeIndent)
			}
			r.render(child, next, lines)
		}
	}
}

// fileLabel renders "dir/part/" in gray, the leaf name in the leaf color
// and the file's icon in its own color.
func (r *Renderer) fileLabel(name string) string {
	var b strings.Builder
	leaf := name
	if idx := strings.LastIndex(name, Separator); idx >= 0 {
		b.WriteString(r.theme.Tree.Render(name[:idx+1]))
		leaf = name[idx+1:]
	}
	b.WriteString(r.theme.Leaf.Render(leaf))

	if r.icons != nil {
		if glyph, color := r.icons.Icon(leaf); glyph != "" {
			b.WriteString(" ")
			b.WriteString(r.theme.Foreground(theme.FromHex(color)).Render(glyph))
		}
	}
	return b.String()
}
