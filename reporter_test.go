package sift

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.PrintDiagnostics([]Diagnostic{
		{
			Category:   DiagUnresolvedDynamicUsage,
			Severity:   SeverityWarning,
			File:       "app.js",
			Line:       3,
			Column:     5,
			Message:    "dynamically constructed class name cannot be resolved statically; whitelist affected selectors",
			SourceLine: `el.className = "btn-" + kind;`,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "app.js:3:5:")
	assert.Contains(t, out, "(UnresolvedDynamicUsage)")
	assert.Contains(t, out, `el.className = "btn-" + kind;`)
	assert.Contains(t, out, "^")
}

func TestPrintDiagnostics_SortedByLocation(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.PrintDiagnostics([]Diagnostic{
		{File: "b.js", Line: 1, Message: "second"},
		{File: "a.js", Line: 9, Message: "first"},
	})

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("first")), bytes.Index(buf.Bytes(), []byte("second")), out)
}

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{name: "start of line", line: "abc", column: 1, want: "^"},
		{name: "mid line", line: "abcdef", column: 4, want: "   ^"},
		{name: "tabs preserved", line: "\tabc", column: 3, want: "\t ^"},
		{name: "column past end", line: "ab", column: 10, want: "  ^"},
		{name: "no column", line: "ab", column: 0, want: "^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCaretIndicator(tt.line, tt.column))
		})
	}
}

func TestPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.PrintErrors([]*Error{
		wrapError(KindIO, "missing.css", "read stylesheet", assertErr{}),
	})

	out := buf.String()
	assert.Contains(t, out, "IOFailure:")
	assert.Contains(t, out, "missing.css")
}

type assertErr struct{}

func (assertErr) Error() string { return "no such file" }

func TestDetermineOutputFormat(t *testing.T) {
	assert.Equal(t, OutputIssues, DetermineOutputFormat("", false))
	assert.Equal(t, OutputIssues, DetermineOutputFormat("full", true), "quiet wins")
	assert.Equal(t, OutputSummary, DetermineOutputFormat("summary", false))
	assert.Equal(t, OutputFull, DetermineOutputFormat("full", false))
	assert.Equal(t, OutputJSON, DetermineOutputFormat("json", false))
	assert.Equal(t, OutputIssues, DetermineOutputFormat("bogus", false))
}

func TestWriteOutput_Summary(t *testing.T) {
	result := &AnalyzeResult{
		RulesTotal:   3,
		RulesKept:    1,
		RulesRemoved: 2,
		TokensFound:  12,
		BytesIn:      100,
		BytesOut:     40,
		Stats:        ScanStats{FilesScanned: 2},
	}

	var buf bytes.Buffer
	WriteOutput(&buf, result, OutputSummary, false)

	out := buf.String()
	assert.Contains(t, out, "Rules removed:    2")
	assert.Contains(t, out, "Files scanned:    2")
	assert.Contains(t, out, "Bytes saved:      60 of 100")
	assert.Contains(t, out, "Removed 2 unused rule(s)")
}

func TestWriteOutput_JSON(t *testing.T) {
	result := &AnalyzeResult{
		RulesTotal: 2,
		RulesKept:  2,
		Diagnostics: []Diagnostic{
			{Category: DiagInvalidSelector, Severity: SeverityError, File: "a.css", Message: "bad"},
		},
		FileErrors: []*Error{newError(KindInvalidSelector, "a.css", "bad selector")},
	}

	var buf bytes.Buffer
	WriteOutput(&buf, result, OutputJSON, false)

	var report JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "1.0", report.Version)
	assert.Equal(t, 2, report.Summary.RulesTotal)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "InvalidSelectorSyntax", report.Diagnostics[0].Category)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "InvalidSelectorSyntax", report.Errors[0].Kind)
}
