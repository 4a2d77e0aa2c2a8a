// Package tree turns flat lists of changed file paths into collapsed,
// box-drawn directory trees.
package tree

import (
	"sort"
	"strings"
)

// Separator splits path segments and joins collapsed directory chains.
const Separator = "/"

// Node is one path segment. The root is an unnamed directory.
type Node struct {
	IsFile   bool
	Children map[string]*Node
}

func newNode(isFile bool) *Node {
	return &Node{IsFile: isFile, Children: make(map[string]*Node)}
}

// Names returns the child names in display order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build inserts every path into a fresh tree. Paths are taken literally;
// empty paths are skipped. A segment that is a directory for one path and
// a file for another ends up a directory.
func Build(paths []string) *Node {
	root := newNode(false)
	for _, p := range paths {
		if p == "" {
			continue
		}
		parts := strings.Split(p, Separator)
		current := root
		for i, part := range parts {
			isFile := i == len(parts)-1
			child, ok := current.Children[part]
			if !ok {
				child = newNode(isFile)
				current.Children[part] = child
			} else if !isFile && child.IsFile {
				child.IsFile = false
			}
			current = child
		}
	}
	return root
}

// Collapse returns a copy of n in which every directory whose only child
// is another directory is merged with it into a single "parent/child"
// segment. Chains are merged bottom-up, so a/b/c/file.txt yields "a/b/c"
// holding file.txt. n itself is never renamed.
func Collapse(n *Node) *Node {
	out := newNode(n.IsFile)
	for name, child := range n.Children {
		collapsed := Collapse(child)
		for !collapsed.IsFile && len(collapsed.Children) == 1 {
			onlyName, only := soleChild(collapsed)
			if only.IsFile {
				break
			}
			name = name + Separator + onlyName
			collapsed = only
		}
		out.Children[name] = collapsed
	}
	return out
}

func soleChild(n *Node) (string, *Node) {
	for name, child := range n.Children {
		return name, child
	}
	return "", nil
}

// Equal reports whether two trees have the same shape and names.
func Equal(a, b *Node) bool {
	if a.IsFile != b.IsFile || len(a.Children) != len(b.Children) {
		return false
	}
	for name, ac := range a.Children {
		bc, ok := b.Children[name]
		if !ok || !Equal(ac, bc) {
			return false
		}
	}
	return true
}
