package entities

import (
	"strconv"
	"strings"
)

const (
	statusCodeWidth = 2
	statusPathStart = 3
	untrackedCode   = "??"
)

// ChangeSet groups the paths reported by `git status --porcelain` into three buckets.
// Each bucket keeps the order in which git listed the paths.
type ChangeSet struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Total returns the number of paths across all buckets.
func (c ChangeSet) Total() int {
	return len(c.Added) + len(c.Modified) + len(c.Deleted)
}

// IsEmpty reports whether no change was found.
func (c ChangeSet) IsEmpty() bool {
	return c.Total() == 0
}

// ParseStatus turns porcelain v1 output into a ChangeSet.
//
// Classification, first match wins:
//   - "??" or "A" in either column: Added
//   - "D" in either column: Deleted
//   - anything else (M, R, C, T, U): Modified
func ParseStatus(output string) ChangeSet {
	changes := ChangeSet{
		Added:    []string{},
		Modified: []string{},
		Deleted:  []string{},
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || len(line) <= statusPathStart {
			continue
		}

		code := line[:statusCodeWidth]
		path := unquotePath(line[statusPathStart:])

		switch {
		case code == untrackedCode || strings.Contains(code, "A"):
			changes.Added = append(changes.Added, path)
		case strings.Contains(code, "D"):
			changes.Deleted = append(changes.Deleted, path)
		default:
			changes.Modified = append(changes.Modified, path)
		}
	}

	return changes
}

// unquotePath undoes the C-style quoting git applies to paths with unusual characters.
func unquotePath(path string) string {
	if len(path) < 2 || !strings.HasPrefix(path, `"`) || !strings.HasSuffix(path, `"`) {
		return path
	}
	unquoted, err := strconv.Unquote(path)
	if err != nil {
		return path
	}
	return unquoted
}
