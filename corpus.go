package sift

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// isMinified skips pre-minified assets: scanning them adds no usage
// tokens beyond their readable sources and inflates scan time.
func isMinified(path string) bool {
	return strings.HasSuffix(path, ".min.js") ||
		strings.HasSuffix(path, ".min.css")
}

// shouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Pattern check (fast): skip minified bundles
// 2. Gitignore check: skip gitignored files (only for relative paths)
func shouldSkipFile(path string) bool {
	if isMinified(path) {
		return true
	}

	// Only apply gitignore to relative paths (paths within the project).
	// Absolute paths (like /tmp/...) should not be affected by it.
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ExpandGlobs expands doublestar glob patterns to deduplicated file
// paths, applying the two-layer skip filter and tracking statistics.
func ExpandGlobs(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, newError(KindConfig, "", "glob pattern %q: %v", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++
			seen[match] = true

			if shouldSkipFile(match) {
				stats.FilesSkipped++
			} else {
				allFiles = append(allFiles, match)
				stats.FilesScanned++
			}
		}
	}

	return allFiles, stats, nil
}

// LoadSources reads every file matching the patterns into a source
// corpus. Unreadable files are reported as IOFailure errors alongside
// the files that did load (partial-success model).
func LoadSources(patterns []string) ([]SourceFile, ScanStats, []*Error) {
	files, stats, err := ExpandGlobs(patterns)
	if err != nil {
		var e *Error
		if fe, ok := err.(*Error); ok {
			e = fe
		} else {
			e = wrapError(KindConfig, "", "expanding patterns", err)
		}
		return nil, stats, []*Error{e}
	}

	var sources []SourceFile
	var errs []*Error
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			errs = append(errs, wrapError(KindIO, f, "read file", err))
			continue
		}
		sources = append(sources, SourceFile{Path: f, Content: string(content)})
	}

	return sources, stats, errs
}

// LoadStylesheet reads and concatenates stylesheet files in glob order
// into a single sheet. The analyzer requires already-extracted CSS, so
// concatenation order follows the pattern order the caller supplies.
func LoadStylesheet(patterns []string) (*Stylesheet, []*Error) {
	files, _, err := ExpandGlobs(patterns)
	if err != nil {
		if fe, ok := err.(*Error); ok {
			return nil, []*Error{fe}
		}
		return nil, []*Error{wrapError(KindConfig, "", "expanding patterns", err)}
	}

	var b strings.Builder
	var errs []*Error
	var names []string
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			errs = append(errs, wrapError(KindIO, f, "read stylesheet", err))
			continue
		}
		names = append(names, f)
		b.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			b.WriteByte('\n')
		}
	}

	path := strings.Join(names, "+")
	sheet, perr := ParseStylesheet(b.String(), path)
	if perr != nil {
		if fe, ok := perr.(*Error); ok {
			errs = append(errs, fe)
		} else {
			errs = append(errs, wrapError(KindInvalidSelector, path, "parse stylesheet", perr))
		}
	}
	return sheet, errs
}

// GetRelativePath returns a path relative to the current working
// directory, for compact diagnostics.
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
