package sift

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Whitelist holds selector patterns that are always retained regardless
// of analyzer verdicts. Patterns are matched against the sigil-stripped
// simple-selector name and against the full selector string. Entries
// containing glob metacharacters use doublestar matching.
type Whitelist struct {
	exact map[string]struct{}
	globs []string
}

// NewWhitelist validates and compiles whitelist patterns. A malformed
// glob pattern is a ConfigurationError.
func NewWhitelist(patterns []string) (*Whitelist, error) {
	w := &Whitelist{exact: make(map[string]struct{})}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimPrefix(strings.TrimPrefix(p, "."), "#")
		if !strings.ContainsAny(p, "*?[{") {
			w.exact[p] = struct{}{}
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, newError(KindConfig, "", "malformed whitelist pattern %q", p)
		}
		w.globs = append(w.globs, p)
	}

	return w, nil
}

// Match reports whether the given sigil-stripped name is whitelisted.
func (w *Whitelist) Match(name string) bool {
	if w == nil {
		return false
	}
	if _, ok := w.exact[name]; ok {
		return true
	}
	for _, g := range w.globs {
		// Pattern validity was checked at construction.
		if ok, _ := doublestar.Match(g, name); ok {
			return true
		}
	}
	return false
}

// Empty reports whether the whitelist holds no patterns.
func (w *Whitelist) Empty() bool {
	return w == nil || (len(w.exact) == 0 && len(w.globs) == 0)
}
