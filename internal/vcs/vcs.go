// SPDX-License-Identifier: MPL-2.0

// Package vcs inspects the project's git repository without shelling out.
// Mutating operations (init, commit, push) stay with the git CLI so they use
// the user's git configuration and credentials.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Repository is an opened git work tree.
type Repository struct {
	repo *git.Repository
}

// Open opens the repository containing dir, searching parent directories.
func Open(dir string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	return &Repository{repo: repo}, nil
}

// HasRemote reports whether a remote with the given name is configured.
func (r *Repository) HasRemote(name string) (bool, error) {
	_, err := r.repo.Remote(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("read remote %s: %w", name, err)
	}
}

// HasCommits reports whether HEAD points at a commit.
func (r *Repository) HasCommits() bool {
	_, err := r.repo.Head()
	return err == nil
}

// IsClean reports whether the work tree has no uncommitted changes.
func (r *Repository) IsClean() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("read status: %w", err)
	}
	return status.IsClean(), nil
}
