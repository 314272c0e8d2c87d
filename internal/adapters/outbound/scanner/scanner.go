package scanner

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".aiready":     true,
}

// FileScanner implements domain.FileEnumerator by walking the filesystem.
type FileScanner struct {
	extensions map[string]bool
}

// New returns a scanner that keeps files with one of the given extensions.
func New(extensions []string) *FileScanner {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &FileScanner{extensions: exts}
}

// Enumerate returns the slash-separated paths, relative to root, of every
// supported source file that passes the include and exclude globs.
func (s *FileScanner) Enumerate(root string, include, exclude []string) ([]string, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(absPath, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, _ := filepath.Rel(absPath, p)
		rel := filepath.ToSlash(relPath)

		if d.IsDir() {
			if p == absPath {
				return nil
			}
			if skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") || excludesDir(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.extensions[strings.ToLower(path.Ext(rel))] {
			return nil
		}
		if len(include) > 0 && !matchAny(include, rel) {
			return nil
		}
		if matchAny(exclude, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// matchAny reports whether rel matches one of patterns. Patterns without a
// slash also match against the base name, so "*.py" applies at any depth.
func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}

// excludesDir reports whether an exclude pattern names the whole directory.
func excludesDir(exclude []string, rel string) bool {
	for _, p := range exclude {
		p = strings.TrimSuffix(p, "/")
		if p == rel || p == rel+"/**" {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
