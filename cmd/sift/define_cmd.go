package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/sift"
	"github.com/yacobolo/sift/define"
)

var defineCmd = &cobra.Command{
	Use:   "define",
	Short: "Substitute free variables with literals and drop dead branches",
	Long: `Replace free occurrences of configured keys (process.env.NODE_ENV,
feature flags) with literal values, fold the comparisons that become
constant, and eliminate branches proven dead. Occurrences shadowed by
local bindings are left untouched.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDefine()
	},
}

func init() {
	f := defineCmd.Flags()
	f.StringSlice("content", nil, "Source file glob patterns")
	// Named "set" rather than "define" so the flag key cannot collide
	// with the define.* config namespace when koanf merges providers.
	f.StringSliceP("set", "D", nil, "key=value substitution (repeatable)")
	f.Bool("write", false, "Rewrite changed files in place")
	f.String("out-dir", "", "Write results under this directory instead of stdout")
	f.Int("max-fold-passes", 0, "Cap on constant-folding passes per file (0=default)")
	f.Bool("strict", false, "Exit 1 on any diagnostic (CI mode)")
}

func runDefine() error {
	patterns := getStringsWithFallback("content", "define.content", nil)
	if len(patterns) == 0 {
		return fmt.Errorf("no source patterns; set --content or define.content in config")
	}

	vars, err := buildVars()
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		return fmt.Errorf("no substitutions; pass --set or configure define.values")
	}

	files, _, loadErrs := sift.LoadSources(patterns)
	result, err := define.Substitute(files, vars, define.Options{
		MaxFoldPasses: getIntWithFallback("max-fold-passes", "define.max-fold-passes", 0),
	})
	if err != nil {
		return err
	}
	result.Errors = append(loadErrs, result.Errors...)

	if err := writeResults(result); err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet {
		useColors := sift.ShouldUseColors(getBoolWithFallback("color", "color", false))
		reporter := sift.NewReporter(os.Stderr, useColors)
		reporter.PrintDiagnostics(result.Diagnostics)
		reporter.PrintErrors(result.Errors)
	}

	if result.HasErrors() {
		os.Exit(1)
	}
	if getBoolWithFallback("strict", "define.strict", false) && len(result.Diagnostics) > 0 {
		os.Exit(1)
	}
	return nil
}

// buildVars merges the config file's define.values map with --define
// flags; flags win on key collisions. Cut+All re-flattens the subtree,
// recovering dotted keys like process.env.NODE_ENV that the koanf
// delimiter split apart.
func buildVars() (map[string]define.Literal, error) {
	vars := make(map[string]define.Literal)
	for key, raw := range k.Cut("define.values").All() {
		if !define.ValidKey(key) {
			return nil, fmt.Errorf("malformed free-variable key %q in config", key)
		}
		vars[key] = define.ParseValue(fmt.Sprintf("%v", raw))
	}

	flagVars, err := define.ParseMap(k.Strings("set"))
	if err != nil {
		return nil, err
	}
	for key, lit := range flagVars {
		vars[key] = lit
	}
	return vars, nil
}

func writeResults(result *define.Result) error {
	write := getBoolWithFallback("write", "define.write", false)
	outDir := getStringWithFallback("out-dir", "define.out-dir", "")

	switch {
	case write:
		for _, fr := range result.Files {
			if !fr.Changed {
				continue
			}
			if err := os.WriteFile(fr.Path, fr.Output, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", fr.Path, err)
			}
		}
	case outDir != "":
		for _, fr := range result.Files {
			dest := filepath.Join(outDir, filepath.Base(fr.Path))
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
			}
			if err := os.WriteFile(dest, fr.Output, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}
		}
	default:
		for _, fr := range result.Files {
			os.Stdout.Write(fr.Output)
		}
	}
	return nil
}
