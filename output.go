package sift

import (
	"io"
)

// DetermineOutputFormat selects the report format from flags.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit quiet wins (exit code only).
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}

	// Following golangci-lint's UX: issues only by default.
	return OutputIssues
}

// WriteOutput writes the analysis report in the specified format.
func WriteOutput(w io.Writer, result *AnalyzeResult, format OutputFormat, useColors bool) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, useColors)
		reporter.PrintDiagnostics(result.Diagnostics)
		reporter.PrintErrors(result.FileErrors)

	case OutputSummary:
		NewReporter(w, useColors).PrintSummary(result)

	case OutputFull:
		reporter := NewReporter(w, useColors)
		reporter.PrintDiagnostics(result.Diagnostics)
		reporter.PrintErrors(result.FileErrors)
		reporter.PrintSummary(result)

	case OutputJSON:
		// Encoding errors surface through w itself; nothing to add here.
		_ = WriteJSON(w, result)
	}
}
