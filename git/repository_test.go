package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, r *testutil.Repo) *Repository {
	t.Helper()
	repo, err := Open(r.Dir)
	require.NoError(t, err)
	return repo
}

func TestOpenDiscoversFromSubdirectory(t *testing.T) {
	r := testutil.InitGitRepo(t)
	sub := filepath.Join(r.Dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0755))

	repo, err := Open(sub)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Dir, ".git"), repo.GitDir())
}

func TestOpenOutsideRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRepoNotFound))
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := testutil.InitGitRepo(t)
	head := r.Commit("feat: second", map[string]string{"a.txt": "a"})
	r.Tag("v1.0.0")
	r.AnnotatedTag("v1.0.1", "release")
	repo := openFixture(t, r)

	for _, ref := range []string{"HEAD", "main", "refs/heads/main", "v1.0.0", "v1.0.1", head, head[:10]} {
		hash, err := repo.Resolve(ctx, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, head, hash, ref)
	}
}

func TestResolveUnknownRef(t *testing.T) {
	r := testutil.InitGitRepo(t)
	repo := openFixture(t, r)

	_, err := repo.Resolve(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRefNotFound))

	groveErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "does-not-exist", groveErr.Details["ref"])
}

func TestAhead(t *testing.T) {
	ctx := context.Background()
	r := testutil.InitGitRepo(t)
	r.CreateBranch("feature")
	first := r.Commit("feat(cli): add flag", map[string]string{"cmd/flag.go": "package cmd"})
	second := r.Commit("fix: typo", map[string]string{"README.md": "# Fixed\n"})

	r.Checkout("main")
	r.Commit("chore: on main only", map[string]string{"main.txt": "m"})

	repo := openFixture(t, r)
	base, err := repo.Resolve(ctx, "main")
	require.NoError(t, err)
	head, err := repo.Resolve(ctx, "feature")
	require.NoError(t, err)

	ahead, err := repo.Ahead(ctx, base, head)
	require.NoError(t, err)
	require.Len(t, ahead, 2)
	assert.Equal(t, second, ahead[0].Hash, "newest first")
	assert.Equal(t, first, ahead[1].Hash)
	assert.Equal(t, "fix: typo", ahead[0].Summary)
	assert.Equal(t, second[:7], ahead[0].ShortHash)
	assert.Equal(t, "Test User", ahead[0].Author)
	assert.Equal(t, []string{first}, ahead[0].ParentHashes)

	none, err := repo.Ahead(ctx, head, head)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReachable(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewRepo(t)
	a := r.Commit("one", map[string]string{"a": "1"})
	b := r.Commit("two", map[string]string{"b": "2"})
	repo := openFixture(t, r)

	set, err := repo.Reachable(ctx, b)
	require.NoError(t, err)
	assert.Len(t, set, 2)
	assert.Contains(t, set, a)
	assert.Contains(t, set, b)
}

func TestChangedFiles(t *testing.T) {
	ctx := context.Background()
	r := testutil.NewRepo(t)
	root := r.Commit("Initial commit", map[string]string{
		"README.md":        "hi",
		"src/main.go":      "package main",
		"src/util/util.go": "package util",
	})
	modified := r.Commit("feat: more", map[string]string{
		"src/main.go":   "package main\n",
		"docs/guide.md": "guide",
	})
	removed := r.Remove("chore: drop util", "src/util/util.go")
	repo := openFixture(t, r)

	files, err := repo.ChangedFiles(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/main.go", "src/util/util.go"}, files, "root commit lists its whole tree")

	files, err = repo.ChangedFiles(ctx, modified)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide.md", "src/main.go"}, files)

	files, err = repo.ChangedFiles(ctx, removed)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/util/util.go"}, files, "deletions report the old path")
}

func TestDiffFiles(t *testing.T) {
	ctx := context.Background()
	r := testutil.InitGitRepo(t)
	base := r.Commit("base", map[string]string{"keep.txt": "k", "change.txt": "1"})
	r.CreateBranch("topic")
	r.Commit("one", map[string]string{"change.txt": "2", "pkg/new.go": "package pkg"})
	head := r.Remove("two", "keep.txt")
	repo := openFixture(t, r)

	files, err := repo.DiffFiles(ctx, base, head)
	require.NoError(t, err)
	assert.Equal(t, []string{"change.txt", "keep.txt", "pkg/new.go"}, files)

	files, err = repo.DiffFiles(ctx, head, head)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCommitUnknownHash(t *testing.T) {
	r := testutil.InitGitRepo(t)
	repo := openFixture(t, r)

	_, err := repo.Commit(context.Background(), "0123456789012345678901234567890123456789")
	assert.True(t, errors.Is(err, errors.ErrCodeGitReadFailed))
}

func TestWalkHonoursCancellation(t *testing.T) {
	r := testutil.InitGitRepo(t)
	head := r.Commit("two", map[string]string{"x": "y"})
	repo := openFixture(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Reachable(ctx, head)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "feat: x", summaryLine("  feat: x  \n\nbody"))
	assert.Equal(t, "", summaryLine(""))
}
