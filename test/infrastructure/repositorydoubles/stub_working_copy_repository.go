//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// StubWorkingCopyRepository implements repositories.WorkingCopyRepository with fixed answers.
type StubWorkingCopyRepository struct {
	// --- IsRepository ---
	Repository   bool
	CheckedPaths []string

	// --- OriginURL ---
	Origin    string
	OriginErr error

	// --- CurrentBranch ---
	Branch    string
	BranchErr error
}

var _ repositories.WorkingCopyRepository = (*StubWorkingCopyRepository)(nil)

func (s *StubWorkingCopyRepository) IsRepository(path string) bool {
	s.CheckedPaths = append(s.CheckedPaths, path)
	return s.Repository
}

func (s *StubWorkingCopyRepository) OriginURL(_ string) (string, error) {
	return s.Origin, s.OriginErr
}

func (s *StubWorkingCopyRepository) CurrentBranch(_ string) (string, error) {
	return s.Branch, s.BranchErr
}
