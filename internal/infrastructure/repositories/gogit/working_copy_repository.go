// Package gogit reads working-copy metadata with go-git instead of spawning git.
package gogit

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const originRemote = "origin"

// ErrDetachedHead is returned by CurrentBranch when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// WorkingCopyRepository implements repositories.WorkingCopyRepository on top of go-git.
type WorkingCopyRepository struct{}

var _ repositories.WorkingCopyRepository = (*WorkingCopyRepository)(nil)

// NewWorkingCopyRepository creates a new WorkingCopyRepository.
func NewWorkingCopyRepository() *WorkingCopyRepository {
	return &WorkingCopyRepository{}
}

// IsRepository reports whether path is a non-bare working copy with its own .git entry.
// Parent directories are not searched.
func (it *WorkingCopyRepository) IsRepository(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	repo, err := open(path)
	if err != nil {
		return false
	}
	_, err = repo.Worktree()
	return err == nil
}

// OriginURL returns the first URL of the origin remote exactly as configured.
func (it *WorkingCopyRepository) OriginURL(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", originRemote)
	}
	return urls[0], nil
}

// CurrentBranch returns the short name of the branch HEAD points at,
// including a branch that has no commit yet.
func (it *WorkingCopyRepository) CurrentBranch(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Target().Short(), nil
}

func open(path string) (*git.Repository, error) {
	//nolint:exhaustruct // only the options that change behaviour are set
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}
