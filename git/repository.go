package git

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/grovetools/git-log-pretty/errors"
	"github.com/grovetools/git-log-pretty/logging"
	"github.com/sirupsen/logrus"
)

const shortHashLen = 7

// Repository implements Reader on top of go-git.
type Repository struct {
	repo   *gogit.Repository
	logger *logrus.Entry
}

// Ensure it implements the interface
var _ Reader = (*Repository)(nil)

// Open discovers the repository containing dir, walking up to parent
// directories like git does.
func Open(dir string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if stderrors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, errors.RepoNotFound(dir, err)
		}
		return nil, errors.GitReadFailed("open repository", err).WithDetail("dir", dir)
	}
	return NewRepository(repo), nil
}

// NewRepository wraps an already opened go-git repository.
func NewRepository(repo *gogit.Repository) *Repository {
	return &Repository{
		repo:   repo,
		logger: logging.NewLogger("git"),
	}
}

// GitDir returns the .git directory on disk, or "" for in-memory storage.
func (r *Repository) GitDir() string {
	if fs, ok := r.repo.Storer.(*filesystem.Storage); ok {
		return fs.Filesystem().Root()
	}
	return ""
}

// Resolve returns the commit hash ref points to.
func (r *Repository) Resolve(ctx context.Context, ref string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", errors.RefNotFound(ref, err)
	}
	if _, err := r.repo.CommitObject(*hash); err != nil {
		// Annotated tags resolve to the tag object; peel to its commit.
		tag, tagErr := r.repo.TagObject(*hash)
		if tagErr != nil {
			return "", errors.RefNotFound(ref, err)
		}
		commit, tagErr := tag.Commit()
		if tagErr != nil {
			return "", errors.RefNotFound(ref, tagErr)
		}
		return commit.Hash.String(), nil
	}
	r.logger.WithFields(logrus.Fields{"ref": ref, "hash": hash.String()}).Debug("Resolved reference")
	return hash.String(), nil
}

// Reachable walks the full ancestry of hash.
func (r *Repository) Reachable(ctx context.Context, hash string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})
	err := r.walk(ctx, hash, func(c *object.Commit) error {
		seen[c.Hash.String()] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// Ahead computes head's ancestry minus base's ancestry, newest committer
// time first. Equal times are ordered by hash so output is stable.
func (r *Repository) Ahead(ctx context.Context, base, head string) ([]*Commit, error) {
	baseSet, err := r.Reachable(ctx, base)
	if err != nil {
		return nil, err
	}

	var ahead []*Commit
	err = r.walk(ctx, head, func(c *object.Commit) error {
		if _, ok := baseSet[c.Hash.String()]; !ok {
			ahead = append(ahead, newCommit(c))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ahead, func(i, j int) bool {
		if !ahead[i].When.Equal(ahead[j].When) {
			return ahead[i].When.After(ahead[j].When)
		}
		return ahead[i].Hash < ahead[j].Hash
	})

	r.logger.WithFields(logrus.Fields{"base": base, "head": head, "ahead": len(ahead)}).Debug("Computed ahead commits")
	return ahead, nil
}

// Commit loads a commit by hash.
func (r *Repository) Commit(ctx context.Context, hash string) (*Commit, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return nil, err
	}
	return newCommit(c), nil
}

// ChangedFiles lists the paths a commit touched.
func (r *Repository) ChangedFiles(ctx context.Context, hash string) ([]string, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return nil, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, errors.GitReadFailed("read commit tree", err).WithDetail("commit", hash)
	}

	if c.NumParents() == 0 {
		var files []string
		err := tree.Files().ForEach(func(f *object.File) error {
			files = append(files, f.Name)
			return nil
		})
		if err != nil {
			return nil, errors.GitReadFailed("walk tree", err).WithDetail("commit", hash)
		}
		sort.Strings(files)
		return files, nil
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, errors.GitReadFailed("load parent commit", err).WithDetail("commit", hash)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, errors.GitReadFailed("read parent tree", err).WithDetail("commit", parent.Hash.String())
	}
	return diffPaths(ctx, parentTree, tree)
}

// DiffFiles lists paths that differ between base's and head's trees.
func (r *Repository) DiffFiles(ctx context.Context, base, head string) ([]string, error) {
	baseTree, err := r.treeOf(base)
	if err != nil {
		return nil, err
	}
	headTree, err := r.treeOf(head)
	if err != nil {
		return nil, err
	}
	return diffPaths(ctx, baseTree, headTree)
}

func (r *Repository) treeOf(hash string) (*object.Tree, error) {
	c, err := r.commitObject(hash)
	if err != nil {
		return nil, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, errors.GitReadFailed("read commit tree", err).WithDetail("commit", hash)
	}
	return tree, nil
}

func (r *Repository) commitObject(hash string) (*object.Commit, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, errors.GitReadFailed("load commit", err).WithDetail("commit", hash)
	}
	return c, nil
}

func (r *Repository) walk(ctx context.Context, hash string, fn func(*object.Commit) error) error {
	iter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(hash)})
	if err != nil {
		return errors.GitReadFailed("start revision walk", err).WithDetail("commit", hash)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.GitReadFailed("walk revisions", err).WithDetail("commit", hash)
	}
	return nil
}

// diffPaths reports the new path of every change, or the old path for
// deletions.
func diffPaths(ctx context.Context, from, to *object.Tree) ([]string, error) {
	changes, err := object.DiffTreeWithOptions(ctx, from, to, nil)
	if err != nil {
		return nil, errors.GitReadFailed("diff trees", err)
	}
	files := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func newCommit(c *object.Commit) *Commit {
	hash := c.Hash.String()
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return &Commit{
		Hash:         hash,
		ShortHash:    hash[:shortHashLen],
		Message:      c.Message,
		Summary:      summaryLine(c.Message),
		Author:       c.Author.Name,
		When:         c.Committer.When,
		ParentHashes: parents,
	}
}

func summaryLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
