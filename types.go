package sift

// SourceFile is one member of the source corpus. Path is used only for
// diagnostics; matching is driven purely by Content.
type SourceFile struct {
	Path    string
	Content string
}

// Rule is a single style rule: the selector list that heads it and the
// opaque declaration body. Raw holds the original text of the rule so
// retained rules are emitted byte-for-byte unchanged.
type Rule struct {
	Selectors []string // comma-split selector strings, verbatim
	Body      string   // declaration block without the outer braces
	Raw       string   // full original rule text

	// At-rule fields. Leaf rules leave these zero. Conditional group
	// rules (@media, @supports, @layer) carry Children and are filtered
	// recursively; other at-rules are opaque and always retained.
	AtKeyword string
	Prelude   string
	Children  []Rule
	Opaque    bool

	index int // original position, for order-preserving reassembly
}

// IsAtRule reports whether the rule is any form of at-rule.
func (r *Rule) IsAtRule() bool { return r.AtKeyword != "" }

// Stylesheet is an ordered sequence of rules parsed from a single
// already-extracted CSS text. Path is diagnostic-only.
type Stylesheet struct {
	Path  string
	Rules []Rule
}

// ScanStats tracks corpus file discovery, mirrored into reports.
type ScanStats struct {
	FilesDiscovered int // total files matched by glob patterns
	FilesScanned    int // files actually read (after filtering)
	FilesSkipped    int // files dropped by gitignore/dedup filtering
}

// Options configures a single Analyze pass.
type Options struct {
	// Whitelist lists selector patterns that are always retained, exact
	// or doublestar-glob form. Whitelist membership wins over usage.
	Whitelist []string

	// Disjunctive switches compound-selector retention from the default
	// conjunctive policy (all constituents must be used) to retaining a
	// rule when any constituent is used.
	Disjunctive bool

	// RequireRules makes Analyze fail with EmptyCorpus when both corpora
	// are empty instead of returning an empty result.
	RequireRules bool

	// Cache, when non-nil, memoizes rendered output by content hash.
	Cache *Cache

	Verbose bool
}

// Severity levels for diagnostics.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Diagnostic categories.
const (
	DiagUnresolvedDynamicUsage = "UnresolvedDynamicUsage"
	DiagInvalidSelector        = "InvalidSelectorSyntax"
	DiagShadowedKey            = "ShadowedKeyAmbiguity"
	DiagSyntax                 = "SyntaxError"
)

// Diagnostic is a single attributed finding. Analyzer and substitution
// diagnostics share this shape so the reporter can print both.
type Diagnostic struct {
	Category   string
	Severity   string
	File       string
	Line       int
	Column     int
	Message    string
	SourceLine string
}

// AnalyzeResult is the outcome of one purification pass.
type AnalyzeResult struct {
	Stylesheet *Stylesheet // reduced sheet, strict subsequence of the input
	CSS        string      // rendered reduced stylesheet

	RulesTotal   int
	RulesKept    int
	RulesRemoved int
	BytesIn      int
	BytesOut     int
	TokensFound  int // distinct usage tokens extracted from the corpus

	Stats       ScanStats
	Diagnostics []Diagnostic
	FileErrors  []*Error // per-file failures, partial-success model
}

// HasErrors reports whether any per-file error or error-severity
// diagnostic occurred, which maps to a non-zero CLI exit.
func (r *AnalyzeResult) HasErrors() bool {
	if len(r.FileErrors) > 0 {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// OutputFormat selects the report rendering.
type OutputFormat string

const (
	// OutputIssues shows only diagnostics in golangci-lint format.
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows retention statistics only.
	OutputSummary OutputFormat = "summary"
	// OutputFull shows diagnostics plus statistics.
	OutputFull OutputFormat = "full"
	// OutputJSON exports the structured report.
	OutputJSON OutputFormat = "json"
)
