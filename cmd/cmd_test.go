package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/git-log-pretty/config"
	"github.com/grovetools/git-log-pretty/display"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo *testutil.Repo
	feat string
	fix  string
}

// newFixture builds main with a README and a feature branch two commits
// ahead of it, checked out.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	r := testutil.InitGitRepo(t)
	r.CreateBranch("feature")
	feat := r.Commit("feat(cli): add flag", map[string]string{"cmd/root.go": "package cmd\n"})
	fix := r.Commit("fix: handle empty input", map[string]string{"docs/guide.md": "# Guide\n"})
	return &fixture{repo: r, feat: feat, fix: fix}
}

// run executes the command tree in dir with isolated configuration and
// returns what it wrote to stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCapture(t, dir, args...)
	return out, err
}

func runCapture(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvTheme, "")
	t.Setenv(config.EnvIcons, "")
	t.Setenv(config.EnvBase, "")
	t.Chdir(dir)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--icons", "ascii", "--theme", "dark"}, args...))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git-log-pretty.yml"), []byte(content), 0644))
}

func TestLogShowsCommitsAheadOfBase(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "2 commits ahead of main\n\n"), out)
	fixLine := "  " + f.fix[:7] + " fix handle empty input • "
	featLine := "  " + f.feat[:7] + " feat cli add flag • "
	assert.Contains(t, out, fixLine)
	assert.Contains(t, out, featLine)
	assert.Less(t, strings.Index(out, fixLine), strings.Index(out, featLine), "newest commit first")

	assert.Contains(t, out, "    └── docs\n         └── guide.md *\n")
	assert.Contains(t, out, "    └── cmd\n         └── root.go *\n")
	assert.NotContains(t, out, "README.md")
}

func TestLogLimit(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "-n", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "2 commits ahead of main (showing first 1, 1 more hidden)\n")
	assert.Contains(t, out, f.fix[:7])
	assert.NotContains(t, out, f.feat[:7])
}

func TestLogLimitZeroShowsAll(t *testing.T) {
	f := newFixture(t)
	writeProjectConfig(t, f.repo.Dir, "limit: 1\n")

	out, err := run(t, f.repo.Dir, "--limit", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "2 commits ahead of main\n")
	assert.Contains(t, out, f.feat[:7])
}

func TestLogNegativeLimit(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, f.repo.Dir, "-n", "-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestLogCaughtUp(t *testing.T) {
	f := newFixture(t)
	f.repo.Checkout("main")

	out, err := run(t, f.repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, "All caught up with main\n", out)
}

func TestLogBaseAheadOfHead(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "--base", "feature", "--head", "main")
	require.NoError(t, err)
	assert.Equal(t, "All caught up with feature\n", out)
}

func TestLogUnknownBase(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, f.repo.Dir, "--base", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRefNotFound))
}

func TestLogProjectConfig(t *testing.T) {
	f := newFixture(t)
	f.repo.Checkout("main")
	f.repo.Branch("develop")
	f.repo.Checkout("feature")
	writeProjectConfig(t, f.repo.Dir, "base_branch: develop\nexclude:\n  - docs\n")

	out, err := run(t, f.repo.Dir)
	require.NoError(t, err)

	assert.Contains(t, out, "2 commits ahead of develop\n")
	assert.NotContains(t, out, "guide.md")
	assert.Contains(t, out, "root.go")
}

func TestLogBaseFlagOverridesConfig(t *testing.T) {
	f := newFixture(t)
	writeProjectConfig(t, f.repo.Dir, "base_branch: develop\n")

	out, err := run(t, f.repo.Dir, "--base", f.feat)
	require.NoError(t, err)
	assert.Contains(t, out, "1 commits ahead of "+f.feat+"\n")
}

func TestLogJSON(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "--json")
	require.NoError(t, err)

	var report display.LogReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "main", report.Base)
	assert.Equal(t, "HEAD", report.Head)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Shown)
	require.Len(t, report.Commits, 2)

	assert.Equal(t, f.fix, report.Commits[0].Hash)
	assert.Equal(t, "fix", report.Commits[0].Type)
	assert.Equal(t, []string{"docs/guide.md"}, report.Commits[0].Files)
	assert.Equal(t, "feat", report.Commits[1].Type)
	assert.Equal(t, "cli", report.Commits[1].Scope)
	assert.Equal(t, "Test User", report.Commits[1].Author)
}

func TestLogJSONCaughtUp(t *testing.T) {
	f := newFixture(t)
	f.repo.Checkout("main")

	out, err := run(t, f.repo.Dir, "--json")
	require.NoError(t, err)

	var report display.LogReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Commits)
}

func TestLogOutsideRepository(t *testing.T) {
	_, err := run(t, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRepoNotFound))
}

func TestLogRejectsArguments(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, f.repo.Dir, "main")
	require.Error(t, err)
	assert.Empty(t, errors.GetCode(err))
}

func TestDiff(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "diff")
	require.NoError(t, err)

	expected := strings.Join([]string{
		"2 files changed in main...HEAD",
		"",
		"    ├── cmd",
		"    │    └── root.go *",
		"    └── docs",
		"         └── guide.md *",
		"",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestDiffExplicitRefs(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "diff", f.feat, "feature")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 files changed in "+f.feat+"...feature\n\n"), out)
	assert.Contains(t, out, "guide.md")
	assert.NotContains(t, out, "root.go")
}

func TestDiffExcluded(t *testing.T) {
	f := newFixture(t)
	writeProjectConfig(t, f.repo.Dir, "exclude:\n  - \"**/*.md\"\n")

	out, err := run(t, f.repo.Dir, "diff")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 files changed in main...HEAD (1 excluded)\n\n"), out)
}

func TestDiffNoChanges(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "diff", "main", "main")
	require.NoError(t, err)
	assert.Equal(t, "No changes found\n", out)
}

func TestDiffJSON(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "diff", "--json")
	require.NoError(t, err)

	var report display.DiffReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"cmd/root.go", "docs/guide.md"}, report.Files)
	assert.Zero(t, report.Excluded)
}

func TestDiffTooManyArguments(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, f.repo.Dir, "diff", "a", "b", "c")
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	f := newFixture(t)
	writeProjectConfig(t, f.repo.Dir, "limit: 5\n")

	out, err := run(t, f.repo.Dir, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "# Source: "+filepath.Join(f.repo.Dir, ".git-log-pretty.yml"))
	assert.Contains(t, out, "base_branch: main\n")
	assert.Contains(t, out, "limit: 5\n")
	assert.Contains(t, out, "icons: ascii\n")
	assert.Contains(t, out, "theme: dark\n")
}

func TestConfigShowDefaultsOnly(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "config", "show")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Sources: defaults only\n"), out)
}

func TestConfigShowJSON(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, f.repo.Dir, "config", "show", "--json")
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "main", cfg["base_branch"])
	assert.EqualValues(t, config.DefaultLimit, cfg["limit"])
}

func TestConfigShowInvalidFile(t *testing.T) {
	f := newFixture(t)
	writeProjectConfig(t, f.repo.Dir, "theme: purple\n")

	_, err := run(t, f.repo.Dir, "config", "show")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestConfigSchema(t *testing.T) {
	out, err := run(t, t.TempDir(), "config", "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "base_branch")
	assert.Contains(t, props, "exclude")
}

func TestVersionJSON(t *testing.T) {
	out, err := run(t, t.TempDir(), "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info["version"])
	assert.NotEmpty(t, info["goVersion"])
}

func TestVersionText(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:\tdev")
}

func TestTimingSummary(t *testing.T) {
	f := newFixture(t)

	out, stderr, err := runCapture(t, f.repo.Dir, "--timing")
	require.NoError(t, err)

	assert.Contains(t, out, "2 commits ahead of main")
	assert.Contains(t, stderr, "--- Timing Profile ---")
	assert.Contains(t, stderr, "- resolve refs (1x, ")
	assert.Contains(t, stderr, "- walk commits (1x, ")
	assert.Contains(t, stderr, "- changed files (2x, ")
}

func TestTimingDiff(t *testing.T) {
	f := newFixture(t)

	_, stderr, err := runCapture(t, f.repo.Dir, "diff", "--timing")
	require.NoError(t, err)
	assert.Contains(t, stderr, "- diff trees (1x, ")
}

func TestJSONIgnoresPager(t *testing.T) {
	f := newFixture(t)

	out, stderr, err := runCapture(t, f.repo.Dir, "--json", "--pager")
	require.NoError(t, err)

	assert.Contains(t, stderr, "--pager is ignored with --json")
	var report display.LogReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Total)
}
