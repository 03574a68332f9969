package sift

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReport is the structured export schema for purification runs.
type JSONReport struct {
	Version     string           `json:"version"`
	Timestamp   string           `json:"timestamp"`
	Summary     JSONSummary      `json:"summary"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Errors      []JSONError      `json:"errors"`
}

// JSONSummary contains high-level retention statistics.
type JSONSummary struct {
	FilesScanned int `json:"files_scanned"`
	TokensFound  int `json:"tokens_found"`
	RulesTotal   int `json:"rules_total"`
	RulesKept    int `json:"rules_kept"`
	RulesRemoved int `json:"rules_removed"`
	BytesIn      int `json:"bytes_in"`
	BytesOut     int `json:"bytes_out"`
}

// JSONDiagnostic is one attributed finding.
type JSONDiagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

// JSONError is one per-file failure with its machine-readable kind.
type JSONError struct {
	Kind    string `json:"kind"`
	File    string `json:"file,omitempty"`
	Message string `json:"message"`
}

// WriteJSON writes the analysis result as indented JSON.
func WriteJSON(w io.Writer, result *AnalyzeResult) error {
	report := buildJSONReport(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func buildJSONReport(result *AnalyzeResult) JSONReport {
	diags := make([]JSONDiagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diags[i] = JSONDiagnostic{
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Severity: d.Severity,
			Category: d.Category,
			Message:  d.Message,
			Source:   d.SourceLine,
		}
	}

	errs := make([]JSONError, len(result.FileErrors))
	for i, e := range result.FileErrors {
		errs[i] = JSONError{
			Kind:    string(e.Kind),
			File:    e.Path,
			Message: e.Msg,
		}
	}

	return JSONReport{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesScanned: result.Stats.FilesScanned,
			TokensFound:  result.TokensFound,
			RulesTotal:   result.RulesTotal,
			RulesKept:    result.RulesKept,
			RulesRemoved: result.RulesRemoved,
			BytesIn:      result.BytesIn,
			BytesOut:     result.BytesOut,
		},
		Diagnostics: diags,
		Errors:      errs,
	}
}
