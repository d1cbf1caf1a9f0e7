package workflows

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nainglynndw/securedenv/internal/container"
)

// envPrefix is the fixed filename convention for eligible files.
const envPrefix = ".env"

// excludedSuffixes are filename endings that are never backed up:
// template/example files and the container's own extension.
var excludedSuffixes = []string{".example", ".template", container.Extension}

// FindEnvFiles enumerates eligible dot-env files in the project root.
// The root is listed directly rather than globbed, so glob
// metacharacters in the directory name stay literal. Returned names are
// sorted.
func FindEnvFiles(projectRoot string) ([]string, error) {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", projectRoot, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isEligible(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	return files, nil
}

// ResolveFiles expands user-provided path/glob patterns against the
// project root and filters them to eligible files. Patterns are
// interpreted relative to the root (absolute ones are rebased onto it;
// paths outside the root are dropped) and support **. Returned paths are
// root-relative slash paths, sorted and deduplicated.
func ResolveFiles(patterns []string, projectRoot string) ([]string, error) {
	// Globbing inside a filesystem rooted at the project keeps
	// metacharacters in the root path itself literal.
	rootFS := os.DirFS(projectRoot)

	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		if filepath.IsAbs(pattern) {
			rel, err := filepath.Rel(projectRoot, pattern)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			pattern = rel
		}

		matches, err := doublestar.Glob(rootFS, filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := fs.Stat(rootFS, match)
			if err != nil || info.IsDir() {
				continue
			}
			if !isEligible(path.Base(match)) {
				continue
			}
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// isEligible reports whether a filename matches the dot-env convention
// and carries none of the excluded suffixes.
func isEligible(name string) bool {
	if !strings.HasPrefix(name, envPrefix) {
		return false
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}
