package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .sift.yaml config file",
	Long:  `Create a .sift.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".sift.yaml"); err == nil && !force {
			return fmt.Errorf(".sift.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".sift.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .sift.yaml")
		return nil
	},
}

const defaultConfig = `# sift configuration
# Docs: https://github.com/yacobolo/sift

# Shared settings
verbose: false

# Purification settings
purify:
  css:
    - "assets/**/*.css"
  content:
    - "src/**/*.html"
    - "src/**/*.js"
  whitelist: []              # selectors kept unconditionally
  disjunctive: false         # keep compound selectors on any component hit
  output-format: issues      # issues | summary | full | json
  strict: false

# Substitution settings
define:
  content:
    - "src/**/*.js"
  values:
    process.env.NODE_ENV: production
  write: false               # rewrite changed files in place
  out-dir: ""                # or write results under this directory
  strict: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
