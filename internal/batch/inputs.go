package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandInputs resolves input arguments to regular files. Arguments containing
// glob characters are expanded with ** support; every pattern must match.
func ExpandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			info, err := os.Stat(pattern)
			if err != nil {
				return nil, fmt.Errorf("batch.ExpandInputs: %w", err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("batch.ExpandInputs: %s is a directory", pattern)
			}
			add(filepath.Clean(pattern))
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("batch.ExpandInputs: glob %q: %w", pattern, err)
		}
		n := 0
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			add(m)
			n++
		}
		if n == 0 {
			return nil, fmt.Errorf("batch.ExpandInputs: no files match pattern: %s", pattern)
		}
	}

	sort.Strings(files)
	return files, nil
}

// OutputPath inserts suffix before the extension of in: scores.csv becomes scores.scored.csv.
func OutputPath(in, suffix string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + suffix + ext
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
