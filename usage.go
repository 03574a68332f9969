package sift

import (
	"regexp"
	"strings"
)

// UsageSet is the set of candidate identifier tokens observed in the
// source corpus. Matching against it is deliberately permissive: a
// selector name found anywhere as a delimited word counts as used, even
// inside concatenated strings. False positives keep unused CSS; false
// negatives would discard used CSS, which is the failure mode to avoid.
type UsageSet map[string]struct{}

// Has reports token membership.
func (u UsageSet) Has(token string) bool {
	_, ok := u[token]
	return ok
}

// Add inserts a token.
func (u UsageSet) Add(token string) {
	u[token] = struct{}{}
}

// Merge folds another set into this one.
func (u UsageSet) Merge(other UsageSet) {
	for t := range other {
		u[t] = struct{}{}
	}
}

var (
	// wordPattern captures every delimited identifier-shaped run. This is
	// the permissive fallback scan: markup, templates, and scripts all
	// reduce to the same token soup.
	wordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_-]*`)

	// Attribute-bearing lines, used to attribute dynamic-construction
	// diagnostics to selector-relevant positions only.
	classAttrPattern = regexp.MustCompile(`\b(?:class|className|id)\s*=`)
	classListPattern = regexp.MustCompile(`classList\.(?:add|remove|toggle|replace)\s*\(`)

	// Dynamic class-name construction the analyzer cannot resolve:
	// template interpolation or string concatenation adjacent to quotes.
	templateExprPattern = regexp.MustCompile("`[^`]*\\$\\{")
	concatPattern       = regexp.MustCompile(`["'][^"']*["']\s*\+|\+\s*["']`)
)

// ExtractUsage scans one source file into its usage tokens, reporting
// dynamic class-name construction it cannot resolve as diagnostics so
// the caller can whitelist by hand instead of trusting a guess.
func ExtractUsage(file SourceFile) (UsageSet, []Diagnostic) {
	usage := make(UsageSet)
	var diags []Diagnostic

	for lineNum, line := range strings.Split(file.Content, "\n") {
		for _, token := range wordPattern.FindAllString(line, -1) {
			usage.Add(token)
		}

		if !classAttrPattern.MatchString(line) && !classListPattern.MatchString(line) {
			continue
		}
		if loc := findDynamicUsage(line); loc >= 0 {
			diags = append(diags, Diagnostic{
				Category:   DiagUnresolvedDynamicUsage,
				Severity:   SeverityWarning,
				File:       file.Path,
				Line:       lineNum + 1,
				Column:     loc + 1,
				Message:    "dynamically constructed class name cannot be resolved statically; whitelist affected selectors",
				SourceLine: strings.TrimSpace(line),
			})
		}
	}

	return usage, diags
}

// findDynamicUsage returns the byte offset of the first dynamic
// construction on the line, or -1.
func findDynamicUsage(line string) int {
	if loc := templateExprPattern.FindStringIndex(line); loc != nil {
		return loc[0]
	}
	if loc := concatPattern.FindStringIndex(line); loc != nil {
		return loc[0]
	}
	return -1
}
