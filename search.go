package docview

import (
	"context"
	"sort"
)

// MatchSet is a set of unique relative paths satisfying a search.
type MatchSet map[string]struct{}

// NewMatchSet returns a set holding paths.
func NewMatchSet(paths ...string) MatchSet {
	s := make(MatchSet, len(paths))
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p. Adding a path twice has no effect.
func (s MatchSet) Add(p string) {
	s[p] = struct{}{}
}

// Contains reports whether p is in the set.
func (s MatchSet) Contains(p string) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of paths in the set.
func (s MatchSet) Len() int {
	return len(s)
}

// Union returns a new set holding the paths of s and other.
func (s MatchSet) Union(other MatchSet) MatchSet {
	u := make(MatchSet, len(s)+len(other))
	for p := range s {
		u.Add(p)
	}
	for p := range other {
		u.Add(p)
	}
	return u
}

// Paths returns the paths in lexical order, for presentation only.
func (s MatchSet) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// SearchService finds documents under a root directory. Every call scans
// the live filesystem; nothing is indexed.
type SearchService interface {
	// SearchByName returns documents whose path relative to root contains term.
	// Returns ENOTDIR if root is not a directory.
	SearchByName(ctx context.Context, root, term string, caseSensitive bool) (MatchSet, error)

	// SearchByContent returns documents whose text contains term.
	// Files that cannot be read as text are skipped.
	// Returns ENOTDIR if root is not a directory.
	SearchByContent(ctx context.Context, root, term string, caseSensitive bool) (MatchSet, error)

	// Search returns the case-insensitive union of name and content matches.
	Search(ctx context.Context, root, term string) (MatchSet, error)

	// Tree returns every document under root.
	Tree(ctx context.Context, root string) (MatchSet, error)
}
