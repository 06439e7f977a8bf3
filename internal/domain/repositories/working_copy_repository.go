package repositories

// WorkingCopyRepository reads repository metadata without spawning git.
type WorkingCopyRepository interface {
	// IsRepository reports whether path is an existing directory holding git metadata.
	IsRepository(path string) bool

	// OriginURL returns the first URL configured for the "origin" remote.
	OriginURL(path string) (string, error)

	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(path string) (string, error)
}
