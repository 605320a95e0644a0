// Package git provides the repository queries and hook installation the
// runner needs, built on go-git.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Repository is an opened git repository.
type Repository struct {
	repo *git.Repository
	Root string
}

// NewRepository opens the repository containing path.
func NewRepository(path string) (*Repository, error) {
	root, err := FindGitRoot(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{
		Root: root,
		repo: repo,
	}, nil
}

// FindGitRoot walks upward from path until it finds the repository root.
func FindGitRoot(path string) (string, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		gitDir := filepath.Join(path, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			if info.IsDir() {
				return path, nil
			}
			// In a worktree .git is a file pointing at the real gitdir.
			// #nosec G304 -- reading git metadata
			if content, err := os.ReadFile(gitDir); err == nil {
				line := strings.TrimSpace(string(content))
				if strings.HasPrefix(line, "gitdir: ") {
					return path, nil
				}
			}
		}

		parent := filepath.Dir(path)
		if parent == path {
			return "", errors.New("not in a git repository")
		}
		path = parent
	}
}

// IsInRepository reports whether the working directory is inside a git
// repository.
func IsInRepository() bool {
	_, err := FindGitRoot("")
	return err == nil
}

// TrackedFiles lists every path in the index, sorted, matching the output
// of `git ls-files`.
func (r *Repository) TrackedFiles() ([]string, error) {
	if r.repo == nil {
		return nil, errors.New("repository is not initialized")
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	files := make([]string, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		files = append(files, entry.Name)
	}
	sort.Strings(files)

	return files, nil
}

// StagedFiles lists paths whose staged entry differs from HEAD and which
// still exist in the index. Staged deletions are excluded; there is no
// file to hand to a hook.
func (r *Repository) StagedFiles() ([]string, error) {
	if r.repo == nil {
		return nil, errors.New("repository is not initialized")
	}

	status, err := r.status()
	if err != nil {
		return nil, err
	}

	var files []string
	for file, fileStatus := range status {
		switch fileStatus.Staging {
		case git.Added, git.Modified, git.Copied, git.Renamed:
			files = append(files, file)
		}
	}
	sort.Strings(files)

	return files, nil
}

// UnstagedTrackedChanges lists tracked paths with working tree
// modifications or deletions that are not staged. Untracked files are
// never reported.
func (r *Repository) UnstagedTrackedChanges() ([]string, error) {
	if r.repo == nil {
		return nil, errors.New("repository is not initialized")
	}

	status, err := r.status()
	if err != nil {
		return nil, err
	}

	var files []string
	for file, fileStatus := range status {
		switch fileStatus.Worktree {
		case git.Modified, git.Deleted:
			files = append(files, file)
		}
	}
	sort.Strings(files)

	return files, nil
}

func (r *Repository) status() (git.Status, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return status, nil
}
