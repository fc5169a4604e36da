package docview

import (
	"os"
	"path/filepath"
	"strings"
)

// RootPath is the relative path of the root directory itself.
const RootPath = "."

// CheckRoot returns ENOTDIR unless root exists and is a directory.
// Callers check on every operation since the tree may change between calls.
func CheckRoot(root string) error {
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return Errorf(ENOTDIR, "%s is not a directory", root)
	}
	return nil
}

// RelativeTo returns path relative to root by stripping the segments both
// share. Returns EOUTSIDE if path does not lie within root's tree, and
// RootPath if path is root itself.
func RelativeTo(root, path string) (string, error) {
	rootAbs, rootSegs := splitSegments(root)
	pathAbs, pathSegs := splitSegments(path)

	if rootAbs != pathAbs || len(pathSegs) < len(rootSegs) {
		return "", outsideRoot(root, path)
	}
	for i, seg := range rootSegs {
		if pathSegs[i] != seg {
			return "", outsideRoot(root, path)
		}
	}

	rest := pathSegs[len(rootSegs):]
	if len(rest) == 0 {
		return RootPath, nil
	}
	if rest[0] == ".." {
		return "", outsideRoot(root, path)
	}
	return filepath.Join(rest...), nil
}

// Contains reports whether path lies within root's tree (root included).
func Contains(root, path string) bool {
	_, err := RelativeTo(root, path)
	return err == nil
}

// ResolveInRoot joins a caller supplied name onto root and verifies that
// the result stays inside root. Absolute names are checked as they are.
func ResolveInRoot(root, name string) (string, error) {
	candidate := name
	if !filepath.IsAbs(name) {
		candidate = filepath.Join(root, name)
	}
	if _, err := RelativeTo(root, candidate); err != nil {
		return "", err
	}
	return filepath.Clean(candidate), nil
}

// splitSegments cleans p and splits it into its segments. The empty segment
// produced by a leading separator is dropped and reported as abs instead.
func splitSegments(p string) (abs bool, segs []string) {
	p = filepath.Clean(p)
	abs = filepath.IsAbs(p)
	if p == RootPath {
		return abs, nil
	}
	for _, seg := range strings.Split(p, string(filepath.Separator)) {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return abs, segs
}

func outsideRoot(root, path string) error {
	return Errorf(EOUTSIDE, "%s is outside of %s", path, root)
}
