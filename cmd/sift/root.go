package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Build-time unused-code elimination for stylesheets and scripts",
	Long: `Remove what your build does not need.

sift purify drops stylesheet rules nothing in the source corpus
references. sift define substitutes free variables with literal values
and eliminates the branches that become dead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".sift.yaml", "Config file path")

	rootCmd.AddCommand(purifyCmd)
	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
