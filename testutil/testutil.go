package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Epoch is the author time of the first fixture commit.
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// CommitInterval is the time between consecutive fixture commits.
const CommitInterval = time.Hour

// Repo is a throwaway repository on disk, driven through go-git so tests
// do not depend on a git binary.
type Repo struct {
	t    *testing.T
	Dir  string
	Git  *gogit.Repository
	When time.Time
}

// NewRepo initializes an empty repository whose default branch is main.
func NewRepo(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Main},
	})
	require.NoError(t, err, "init repository")

	return &Repo{t: t, Dir: dir, Git: repo, When: Epoch}
}

// InitGitRepo initializes a repository with a single README commit on main.
func InitGitRepo(t *testing.T) *Repo {
	t.Helper()

	r := NewRepo(t)
	r.Commit("Initial commit", map[string]string{"README.md": "# Test Project\n"})
	return r
}

// Commit writes files (path -> content), stages them and commits. Each
// commit is CommitInterval later than the previous one. It returns the
// new commit hash.
func (r *Repo) Commit(message string, files map[string]string) string {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)

	for path, content := range files {
		full := filepath.Join(r.Dir, filepath.FromSlash(path))
		require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(r.t, os.WriteFile(full, []byte(content), 0644))
		_, err := wt.Add(path)
		require.NoError(r.t, err, "stage %s", path)
	}

	return r.commit(wt, message)
}

// Remove deletes paths from the worktree and index and commits.
func (r *Repo) Remove(message string, paths ...string) string {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)

	for _, path := range paths {
		_, err := wt.Remove(path)
		require.NoError(r.t, err, "remove %s", path)
	}

	return r.commit(wt, message)
}

func (r *Repo) commit(wt *gogit.Worktree, message string) string {
	r.t.Helper()

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.When,
		},
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err, "commit %q", message)

	r.When = r.When.Add(CommitInterval)
	return hash.String()
}

// Branch creates a branch at the current HEAD without checking it out.
func (r *Repo) Branch(name string) {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	require.NoError(r.t, r.Git.Storer.SetReference(ref), "create branch %s", name)
}

// Checkout switches HEAD to an existing branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()

	wt, err := r.Git.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}), "checkout %s", name)
}

// CreateBranch creates a branch at HEAD and checks it out.
func (r *Repo) CreateBranch(name string) {
	r.t.Helper()

	r.Branch(name)
	r.Checkout(name)
}

// Tag creates a lightweight tag at HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)
	_, err = r.Git.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err, "tag %s", name)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *Repo) AnnotatedTag(name, message string) {
	r.t.Helper()

	head, err := r.Git.Head()
	require.NoError(r.t, err)
	_, err = r.Git.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test User", Email: "test@example.com", When: r.When},
		Message: message,
	})
	require.NoError(r.t, err, "tag %s", name)
}
