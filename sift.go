// Package sift provides build-time unused-CSS elimination and
// environment-driven dead-code elimination for web asset pipelines.
//
// # Purification
//
// Reduce a stylesheet to the rules actually referenced by a source corpus:
//
//	sources, _, _ := sift.LoadSources([]string{"src/**/*.{html,js}"})
//	sheet, err := sift.ParseStylesheet(cssText, "bundle.css")
//	result, err := sift.Analyze(sources, sheet, sift.Options{
//		Whitelist: []string{"js-*"},
//	})
//	os.WriteFile("bundle.min.css", []byte(result.CSS), 0644)
//
// # Conditional substitution
//
// Replace free variables with literals and prune dead branches:
//
//	vars, _ := define.ParseMap([]string{"process.env.NODE_ENV=production"})
//	result, err := define.Substitute(files, vars, define.Options{})
//
// # CLI Tool
//
// sift also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/sift/cmd/sift@latest
//
// Run `sift purify` and `sift define` for the two pipelines.
package sift
