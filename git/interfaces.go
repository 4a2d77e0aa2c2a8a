package git

import (
	"context"
	"time"
)

// Commit is the subset of a commit object the viewer displays.
type Commit struct {
	Hash         string
	ShortHash    string
	Message      string
	Summary      string
	Author       string
	When         time.Time
	ParentHashes []string
}

// Reader defines the read-only repository queries used by the viewer.
type Reader interface {
	// Resolve turns a branch, tag, HEAD or hash into a full commit hash.
	Resolve(ctx context.Context, ref string) (string, error)
	// Reachable returns every commit hash reachable from hash.
	Reachable(ctx context.Context, hash string) (map[string]struct{}, error)
	// Ahead returns commits reachable from head but not from base, newest first.
	Ahead(ctx context.Context, base, head string) ([]*Commit, error)
	// Commit loads a single commit.
	Commit(ctx context.Context, hash string) (*Commit, error)
	// ChangedFiles lists paths changed by a commit relative to its first
	// parent, or every path of its tree for a root commit.
	ChangedFiles(ctx context.Context, hash string) ([]string, error)
	// DiffFiles lists paths that differ between the trees of two commits.
	DiffFiles(ctx context.Context, base, head string) ([]string, error)
}
