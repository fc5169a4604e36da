package docview

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions are the AsciiDoc suffixes recognized when no other set
// is configured.
var DefaultExtensions = []string{".adoc", ".asciidoc", ".asc"}

// DocumentFilter decides whether a filesystem entry is an eligible document.
type DocumentFilter struct {
	// Extensions lists accepted suffixes including the leading dot.
	// Matching is case-insensitive. An empty list accepts any extension.
	Extensions []string
}

// NewDocumentFilter returns a filter accepting the given extensions,
// or DefaultExtensions when none are given.
func NewDocumentFilter(exts ...string) *DocumentFilter {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &DocumentFilter{Extensions: append([]string(nil), exts...)}
}

// Validate returns an error if the filter contains invalid extensions.
func (f *DocumentFilter) Validate() error {
	for _, ext := range f.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return Errorf(EINVALID, "extension %q must start with a dot", ext)
		}
	}
	return nil
}

// IsEligible reports whether name is a document: not hidden and carrying
// one of the configured extensions.
func (f *DocumentFilter) IsEligible(name string) bool {
	if IsHidden(name) {
		return false
	}
	return f.HasExtension(name)
}

// HasExtension reports whether name ends in one of the configured extensions.
func (f *DocumentFilter) HasExtension(name string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range f.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// IsHidden reports whether the base name of name starts with a dot.
// The "." and ".." path markers are not hidden.
func IsHidden(name string) bool {
	base := filepath.Base(name)
	if base == "." || base == ".." {
		return false
	}
	return strings.HasPrefix(base, ".")
}
