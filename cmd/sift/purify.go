package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/sift"
)

var purifyCmd = &cobra.Command{
	Use:   "purify",
	Short: "Remove stylesheet rules the source corpus does not reference",
	Long: `Scan the source corpus for tokens and keep only the stylesheet rules
whose selectors those tokens can match. Whitelisted selectors are kept
unconditionally. Retained rules keep their original order and text.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runPurify()
	},
}

func init() {
	f := purifyCmd.Flags()
	f.StringSlice("css", nil, "Stylesheet glob patterns")
	f.StringSlice("content", nil, "Source corpus glob patterns")
	f.StringSlice("whitelist", nil, "Selectors to keep unconditionally (exact or glob)")
	f.Bool("disjunctive", false, "Keep compound selectors when any component is used")
	f.String("out", "", "Write purified CSS to this file (default stdout)")
	f.String("output-format", "", "Report format: issues|summary|full|json")
	f.Bool("strict", false, "Exit 1 on any diagnostic (CI mode)")
}

func runPurify() error {
	cssPatterns := getStringsWithFallback("css", "purify.css", nil)
	if len(cssPatterns) == 0 {
		return fmt.Errorf("no stylesheet patterns; set --css or purify.css in config")
	}
	contentPatterns := getStringsWithFallback("content", "purify.content", nil)
	if len(contentPatterns) == 0 {
		return fmt.Errorf("no corpus patterns; set --content or purify.content in config")
	}

	sheet, sheetErrs := sift.LoadStylesheet(cssPatterns)
	sources, stats, srcErrs := sift.LoadSources(contentPatterns)

	opts := sift.Options{
		Whitelist:   getStringsWithFallback("whitelist", "purify.whitelist", nil),
		Disjunctive: getBoolWithFallback("disjunctive", "purify.disjunctive", false),
		Verbose:     getBoolWithFallback("verbose", "verbose", false),
	}

	result, err := sift.Analyze(sources, sheet, opts)
	if err != nil {
		return err
	}
	result.Stats = stats
	result.FileErrors = append(append(sheetErrs, srcErrs...), result.FileErrors...)

	// Purified CSS goes to the output target; the report goes to stderr
	// so piping the CSS stays clean.
	if out := getStringWithFallback("out", "purify.out", ""); out != "" {
		if err := os.WriteFile(out, []byte(result.CSS), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
	} else {
		fmt.Print(result.CSS)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		format := sift.DetermineOutputFormat(
			getStringWithFallback("output-format", "purify.output-format", ""), quiet)
		useColors := sift.ShouldUseColors(getBoolWithFallback("color", "color", false))
		sift.WriteOutput(os.Stderr, result, format, useColors)
	}

	// Soft gate: per-file errors fail the run, warnings only fail it in
	// strict mode.
	if result.HasErrors() {
		os.Exit(1)
	}
	if getBoolWithFallback("strict", "purify.strict", false) && len(result.Diagnostics) > 0 {
		os.Exit(1)
	}
	return nil
}
