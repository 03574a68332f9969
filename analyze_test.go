package sift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, css string) *Stylesheet {
	t.Helper()
	sheet, err := ParseStylesheet(css, "app.css")
	require.NoError(t, err)
	return sheet
}

func TestAnalyze(t *testing.T) {
	css := `.btn { color: red; }

.btn.active { color: blue; }

#unused { margin: 0; }
`
	sources := []SourceFile{
		{Path: "index.html", Content: `<div class="btn">Click</div>`},
	}

	tests := []struct {
		name        string
		opts        Options
		wantKept    []string
		wantRemoved int
	}{
		{
			name:        "conjunctive default drops partial compounds",
			opts:        Options{},
			wantKept:    []string{".btn {"},
			wantRemoved: 2,
		},
		{
			name:        "disjunctive keeps compounds on any hit",
			opts:        Options{Disjunctive: true},
			wantKept:    []string{".btn {", ".btn.active {"},
			wantRemoved: 1,
		},
		{
			name:        "whitelist always wins",
			opts:        Options{Whitelist: []string{"#unused", "active"}},
			wantKept:    []string{".btn {", ".btn.active {", "#unused {"},
			wantRemoved: 0,
		},
		{
			name:        "whitelist glob",
			opts:        Options{Whitelist: []string{"un*"}},
			wantKept:    []string{".btn {", "#unused {"},
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(sources, mustParse(t, css), tt.opts)
			require.NoError(t, err)

			assert.Equal(t, 3, result.RulesTotal)
			assert.Equal(t, tt.wantRemoved, result.RulesRemoved)
			for _, frag := range tt.wantKept {
				assert.Contains(t, result.CSS, frag)
			}
			assert.False(t, result.HasErrors())
		})
	}
}

// Retained rules keep the input's relative order and exact text: the
// output is a subsequence of the input.
func TestAnalyze_OrderPreserved(t *testing.T) {
	css := `.a { color: red; }

.gone { color: red; }

.b { color: green; }

.c { color: blue; }
`
	sources := []SourceFile{{Path: "page.html", Content: `<i class="c"></i><i class="a b"></i>`}}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)

	posA := strings.Index(result.CSS, ".a {")
	posB := strings.Index(result.CSS, ".b {")
	posC := strings.Index(result.CSS, ".c {")
	require.True(t, posA >= 0 && posB >= 0 && posC >= 0)
	assert.True(t, posA < posB && posB < posC)
	assert.NotContains(t, result.CSS, ".gone")
}

// A stylesheet whose every rule is referenced passes through unchanged.
func TestAnalyze_FullRetentionPassthrough(t *testing.T) {
	css := `.btn { color: red; }

#app { margin: 0; }
`
	sources := []SourceFile{{Path: "index.html", Content: `<div id="app" class="btn"></div>`}}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)
	assert.Equal(t, css, result.CSS)
	assert.Equal(t, 0, result.RulesRemoved)
	assert.Equal(t, result.BytesIn, result.BytesOut)
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	t.Run("no sources with rules is an error", func(t *testing.T) {
		_, err := Analyze(nil, mustParse(t, ".btn { color: red; }"), Options{})
		require.Error(t, err)
		assert.Equal(t, KindEmptyCorpus, KindOf(err))
	})

	t.Run("no sources and no rules yields empty result", func(t *testing.T) {
		result, err := Analyze(nil, &Stylesheet{}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", result.CSS)
	})

	t.Run("RequireRules promotes the empty case to an error", func(t *testing.T) {
		_, err := Analyze(nil, &Stylesheet{}, Options{RequireRules: true})
		require.Error(t, err)
		assert.Equal(t, KindEmptyCorpus, KindOf(err))
	})
}

func TestAnalyze_GroupAtRules(t *testing.T) {
	css := `@media (min-width: 600px) {
  .used { color: red; }
  .unused { color: blue; }
}

@media print {
  .unused { color: blue; }
}

@font-face { font-family: "Inter"; src: url(inter.woff2); }
`
	sources := []SourceFile{{Path: "page.html", Content: `<div class="used"></div>`}}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)

	assert.Contains(t, result.CSS, ".used {")
	assert.NotContains(t, result.CSS, ".unused")
	// The print block lost all children and disappears with them.
	assert.NotContains(t, result.CSS, "@media print")
	// Opaque at-rules are always retained.
	assert.Contains(t, result.CSS, "@font-face")
}

func TestAnalyze_RetainInDoubt(t *testing.T) {
	css := `* { box-sizing: border-box; }

:root { --accent: #07c; }

[hidden] { display: none; }
`
	sources := []SourceFile{{Path: "page.html", Content: `<p>nothing relevant</p>`}}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RulesRemoved, "selectors with no matchable component are kept")
}

func TestAnalyze_InvalidSelectorRetained(t *testing.T) {
	css := `..oops { color: red; }

.unused { color: blue; }
`
	sources := []SourceFile{{Path: "page.html", Content: `<p class="x"></p>`}}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)

	// The unparseable rule is kept and reported; discarding it could
	// remove used CSS.
	assert.Contains(t, result.CSS, "..oops")
	assert.NotContains(t, result.CSS, ".unused")
	require.True(t, result.HasErrors())
	assert.Equal(t, KindInvalidSelector, result.FileErrors[0].Kind)

	var cats []string
	for _, d := range result.Diagnostics {
		cats = append(cats, d.Category)
	}
	assert.Contains(t, cats, DiagInvalidSelector)
}

func TestAnalyze_DynamicUsageDiagnostic(t *testing.T) {
	css := ".btn { color: red; }\n"
	sources := []SourceFile{
		{Path: "app.js", Content: `el.className = "btn-" + kind;` + "\n" + `el.classList.add("btn");`},
	}

	result, err := Analyze(sources, mustParse(t, css), Options{})
	require.NoError(t, err)

	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, DiagUnresolvedDynamicUsage, result.Diagnostics[0].Category)
	assert.Equal(t, "app.js", result.Diagnostics[0].File)
	assert.Contains(t, result.CSS, ".btn")
}

func TestAnalyze_Cached(t *testing.T) {
	css := ".btn { color: red; }\n\n.unused { color: blue; }\n"
	sources := []SourceFile{{Path: "page.html", Content: `<b class="btn"></b>`}}
	cache := NewCache()

	first, err := Analyze(sources, mustParse(t, css), Options{Cache: cache})
	require.NoError(t, err)
	second, err := Analyze(sources, mustParse(t, css), Options{Cache: cache})
	require.NoError(t, err)

	assert.Same(t, first, second, "identical inputs hit the cache")
	assert.Equal(t, 1, cache.Len())

	// A different whitelist is a different key.
	third, err := Analyze(sources, mustParse(t, css), Options{Cache: cache, Whitelist: []string{"unused"}})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Len())
}
