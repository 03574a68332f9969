package sift

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
)

// Analyze reduces a stylesheet to the rules referenced by the source
// corpus. The inputs are never mutated: the result's stylesheet is a
// strict subsequence of the input with original order and rule text.
//
// Per-file and per-selector failures do not abort the pass; they are
// collected on the result (partial-success model). Only configuration
// problems return a non-nil error.
func Analyze(sources []SourceFile, sheet *Stylesheet, opts Options) (*AnalyzeResult, error) {
	whitelist, err := NewWhitelist(opts.Whitelist)
	if err != nil {
		return nil, err
	}

	sheetEmpty := sheet == nil || len(sheet.Rules) == 0
	if len(sources) == 0 {
		if sheetEmpty && !opts.RequireRules {
			return &AnalyzeResult{Stylesheet: &Stylesheet{}}, nil
		}
		return nil, newError(KindEmptyCorpus, "", "source corpus must contain at least one file")
	}

	if opts.Cache != nil {
		key := analyzeCacheKey(sources, sheet, opts)
		value, err := opts.Cache.GetOrCompute(key, func() (any, error) {
			return analyze(sources, sheet, whitelist, opts)
		})
		if err != nil {
			return nil, err
		}
		return value.(*AnalyzeResult), nil
	}

	return analyze(sources, sheet, whitelist, opts)
}

func analyze(sources []SourceFile, sheet *Stylesheet, whitelist *Whitelist, opts Options) (*AnalyzeResult, error) {
	usage, diags := scanCorpus(sources)

	result := &AnalyzeResult{
		TokensFound: len(usage),
		Diagnostics: diags,
		BytesIn:     len(sheet.Render()),
	}

	f := &ruleFilter{
		usage:       usage,
		whitelist:   whitelist,
		disjunctive: opts.Disjunctive,
		path:        sheet.Path,
	}
	kept := f.filter(sheet.Rules)

	result.Stylesheet = &Stylesheet{Path: sheet.Path, Rules: kept}
	result.CSS = result.Stylesheet.Render()
	result.BytesOut = len(result.CSS)
	result.RulesTotal = f.total
	result.RulesKept = f.kept
	result.RulesRemoved = f.total - f.kept
	result.Diagnostics = append(result.Diagnostics, f.diags...)
	result.FileErrors = append(result.FileErrors, f.errs...)

	return result, nil
}

// scanCorpus extracts usage tokens from every source file on parallel
// workers. Each unit of work is tagged with its original index and
// reassembled in input order, so diagnostics stay deterministic while
// file processing order does not matter.
func scanCorpus(sources []SourceFile) (UsageSet, []Diagnostic) {
	type scanOut struct {
		usage UsageSet
		diags []Diagnostic
	}

	outs := make([]scanOut, len(sources))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := runtime.NumCPU()
	if workers > len(sources) {
		workers = len(sources)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				usage, diags := ExtractUsage(sources[i])
				outs[i] = scanOut{usage: usage, diags: diags}
			}
		}()
	}
	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	usage := make(UsageSet)
	var diags []Diagnostic
	for _, out := range outs {
		usage.Merge(out.usage)
		diags = append(diags, out.diags...)
	}
	return usage, diags
}

// ruleFilter carries retention state through the rule tree.
type ruleFilter struct {
	usage       UsageSet
	whitelist   *Whitelist
	disjunctive bool
	path        string

	total int
	kept  int
	diags []Diagnostic
	errs  []*Error
}

func (f *ruleFilter) filter(rules []Rule) []Rule {
	var out []Rule
	for _, r := range rules {
		switch {
		case r.IsAtRule() && !r.Opaque:
			children := f.filter(r.Children)
			if len(children) == 0 && len(r.Children) > 0 {
				continue
			}
			r.Children = children
			out = append(out, r)

		case r.Opaque:
			// @import, @keyframes, @font-face and friends are retained
			// verbatim; usage analysis has nothing to say about them.
			f.total++
			f.kept++
			out = append(out, r)

		default:
			f.total++
			if f.retain(r) {
				f.kept++
				out = append(out, r)
			}
		}
	}
	return out
}

// retain decides rule retention: a rule survives if any of its selectors
// survives. A selector that cannot be parsed is reported and the rule is
// kept — discarding what we cannot understand would be unsound.
func (f *ruleFilter) retain(r Rule) bool {
	for _, sel := range r.Selectors {
		parts, err := decomposeSelector(sel)
		if err != nil {
			f.errs = append(f.errs, wrapError(KindInvalidSelector, f.path, fmt.Sprintf("selector %q", sel), err))
			f.diags = append(f.diags, Diagnostic{
				Category: DiagInvalidSelector,
				Severity: SeverityError,
				File:     f.path,
				Message:  fmt.Sprintf("cannot parse selector %q; rule retained", sel),
			})
			return true
		}
		if f.selectorUsed(sel, parts) {
			return true
		}
	}
	return false
}

// selectorUsed applies the retention policy to one selector. Under the
// default conjunctive policy every matchable component must be observed
// as used (a compound rule only applies when all of its classes are
// simultaneously present); the disjunctive option retains on any hit.
// Whitelist membership always wins, either per component or for the
// selector string as a whole.
func (f *ruleFilter) selectorUsed(sel string, parts []simpleSelector) bool {
	if f.whitelist.Match(strings.TrimSpace(sel)) {
		return true
	}

	matched := 0
	matchable := 0
	for _, p := range parts {
		if !p.matchable() {
			continue
		}
		matchable++
		if f.usage.Has(p.name) || f.whitelist.Match(p.name) {
			matched++
		}
	}

	if matchable == 0 {
		// Nothing to gate on (universal, bare pseudo): retain in doubt.
		return true
	}
	if f.disjunctive {
		return matched > 0
	}
	return matched == matchable
}

// analyzeCacheKey hashes the full inputs plus the retention options, so
// a cache hit is exact.
func analyzeCacheKey(sources []SourceFile, sheet *Stylesheet, opts Options) string {
	h := sha256.New()
	for _, s := range sources {
		fmt.Fprintf(h, "src:%s\x00%d\x00", s.Path, len(s.Content))
		h.Write([]byte(s.Content))
	}
	fmt.Fprintf(h, "css:%s\x00", sheet.Path)
	h.Write([]byte(sheet.Render()))
	wl := append([]string(nil), opts.Whitelist...)
	sort.Strings(wl)
	fmt.Fprintf(h, "wl:%s\x00disj:%t\x00", strings.Join(wl, ","), opts.Disjunctive)
	return hex.EncodeToString(h.Sum(nil))
}
