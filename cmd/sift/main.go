// Package main provides the sift CLI for build-time unused-code
// elimination: stylesheet purification and conditional substitution.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
