package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yourusername/go-relgen/datagen"
)

// StalePatterns match every fixture file (any codec) and the manifest left
// by an earlier run with the same prefix and extension.
func StalePatterns(cfg datagen.Config) []string {
	prefix := quoteMeta(cfg.OutputPrefix)
	ext := quoteMeta(cfg.OutputExt)
	fixtures := prefix + "_{ordered,unordered}_{primary,secondary}." + ext
	return []string{
		fixtures,
		fixtures + ".{lz4,zst}",
		prefix + "_manifest.yaml",
	}
}

// CleanStale removes files in dir matching StalePatterns and returns the
// removed paths.
func CleanStale(dir string, cfg datagen.Config) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	patterns := StalePatterns(cfg)
	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := matchAny(patterns, entry.Name())
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func matchAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid stale pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func quoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\*?[]{},`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
