package define

import (
	"runtime"
	"sync"

	"github.com/yacobolo/sift"
	"github.com/yacobolo/sift/internal/jsparse"
)

// DefaultMaxFoldPasses bounds the fold fixpoint loop. Each pass shrinks
// the tree, so real inputs converge in a handful of passes; the cap
// guards against pathological inputs.
const DefaultMaxFoldPasses = 32

// Options configures a substitution run.
type Options struct {
	// MaxFoldPasses caps fold iterations per file. Zero means
	// DefaultMaxFoldPasses.
	MaxFoldPasses int

	// Workers caps parallel file processing. Zero means NumCPU.
	Workers int
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path   string
	Output []byte

	// Changed reports whether Output differs from the input. A file
	// with no free occurrences of any configured key passes through
	// byte-identical.
	Changed bool

	// Replacements counts substituted occurrences before folding.
	Replacements int
}

// Result aggregates a substitution run across all input files.
type Result struct {
	Files       []FileResult
	Diagnostics []sift.Diagnostic
	Errors      []*sift.Error
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Substitute replaces free occurrences of the configured keys in each
// file, folds the constants that result, and eliminates branches proven
// dead. Files are processed independently: one file's failure never
// blocks the others, and results keep the input order.
func Substitute(files []sift.SourceFile, vars map[string]Literal, opts Options) (*Result, error) {
	for key := range vars {
		if !ValidKey(key) {
			return nil, &sift.Error{Kind: sift.KindConfig, Msg: "malformed free-variable key " + key}
		}
	}

	maxPasses := opts.MaxFoldPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFoldPasses
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	type fileOutcome struct {
		result FileResult
		diags  []sift.Diagnostic
		err    *sift.Error
	}
	outcomes := make([]fileOutcome, len(files))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, diags, err := substituteFile(files[i], vars, maxPasses)
				outcomes[i] = fileOutcome{result: res, diags: diags, err: err}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &Result{Files: make([]FileResult, 0, len(files))}
	for _, o := range outcomes {
		result.Files = append(result.Files, o.result)
		result.Diagnostics = append(result.Diagnostics, o.diags...)
		if o.err != nil {
			result.Errors = append(result.Errors, o.err)
		}
	}
	return result, nil
}

// substituteFile runs the full pipeline on one file: parse, substitute
// free occurrences, then fold to a fixpoint. Folding only runs when a
// substitution happened, so untouched files stay byte-identical.
func substituteFile(file sift.SourceFile, vars map[string]Literal, maxPasses int) (FileResult, []sift.Diagnostic, *sift.Error) {
	src := []byte(file.Content)
	unchanged := FileResult{Path: file.Path, Output: src}

	tree, err := jsparse.Parse(src)
	if err != nil {
		return unchanged, nil, &sift.Error{Kind: sift.KindSyntax, Path: file.Path, Msg: "parse failed", Err: err}
	}
	defer tree.Close()

	if tree.HasSyntaxError() {
		diag := sift.Diagnostic{
			Category: sift.DiagSyntax,
			Severity: sift.SeverityWarning,
			File:     file.Path,
			Message:  "file has syntax errors; left unchanged",
		}
		return unchanged, []sift.Diagnostic{diag}, nil
	}

	edits, diags := findSubstitutions(tree.Root(), src, vars, file.Path)
	if len(edits) == 0 {
		return unchanged, diags, nil
	}

	out := applyEdits(src, edits)
	out, foldErr := foldConstants(out, maxPasses)
	if foldErr != nil {
		return unchanged, diags, &sift.Error{Kind: sift.KindSyntax, Path: file.Path, Msg: "constant folding failed", Err: foldErr}
	}

	return FileResult{
		Path:         file.Path,
		Output:       out,
		Changed:      true,
		Replacements: len(edits),
	}, diags, nil
}
