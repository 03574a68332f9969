package sift

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter formats diagnostics and per-file errors in golangci-lint
// style: one attributed line per finding, optional source line with a
// caret indicator, then a severity summary.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors decides color output from flags and environment.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintDiagnostics outputs diagnostics sorted by file, line, column.
func (r *Reporter) PrintDiagnostics(diags []Diagnostic) {
	sorted := append([]Diagnostic(nil), diags...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Column < sorted[j].Column
	})

	for _, d := range sorted {
		r.printDiagnostic(d)
	}
}

func (r *Reporter) printDiagnostic(d Diagnostic) {
	location := d.File
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", d.File, d.Line, d.Column)
	} else if location != "" {
		location += ":"
	}

	suffix := fmt.Sprintf(" (%s)", d.Category)

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		d.Message,
		RenderStyle(StyleGray, suffix, r.useColors))

	if d.SourceLine != "" {
		fmt.Fprintf(r.w, "\t%s\n", d.SourceLine)
		caret := buildCaretIndicator(d.SourceLine, d.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// matching tabs in the prefix so alignment survives tab rendering.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintErrors outputs the per-file error list.
func (r *Reporter) PrintErrors(errs []*Error) {
	for _, e := range errs {
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleRed, string(e.Kind)+":", r.useColors),
			strings.TrimPrefix(e.Error(), string(e.Kind)+": "))
	}
}

// PrintSummary outputs the retention statistics block.
func (r *Reporter) PrintSummary(result *AnalyzeResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Purification Summary", r.useColors))
	fmt.Fprintln(r.w, "--------------------")
	fmt.Fprintf(r.w, "Files scanned:    %d\n", result.Stats.FilesScanned)
	fmt.Fprintf(r.w, "Tokens found:     %d\n", result.TokensFound)
	fmt.Fprintf(r.w, "Rules total:      %d\n", result.RulesTotal)
	fmt.Fprintf(r.w, "Rules kept:       %d\n", result.RulesKept)
	fmt.Fprintf(r.w, "Rules removed:    %d\n", result.RulesRemoved)
	if result.BytesIn > 0 {
		saved := result.BytesIn - result.BytesOut
		fmt.Fprintf(r.w, "Bytes saved:      %d of %d (%.1f%%)\n",
			saved, result.BytesIn, float64(saved)/float64(result.BytesIn)*100)
	}

	fmt.Fprintln(r.w, "")
	switch {
	case result.HasErrors():
		fmt.Fprintln(r.w, RenderStyle(StyleRed,
			fmt.Sprintf("%d error(s) occurred; output covers unaffected files only", len(result.FileErrors)), r.useColors))
	case result.RulesRemoved > 0:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen,
			fmt.Sprintf("Removed %d unused rule(s)", result.RulesRemoved), r.useColors))
	default:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "No unused rules found", r.useColors))
	}
}
