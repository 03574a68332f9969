// Package jsparse wraps the tree-sitter JavaScript grammar behind a
// small parsing and tree-walking surface for the substitution engine.
package jsparse

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

var jsLanguage = sitter.NewLanguage(tree_sitter_javascript.Language())

// Language returns the JavaScript grammar.
func Language() *sitter.Language {
	return jsLanguage
}

// Tree is a parsed source file. Close must be called when done.
type Tree struct {
	ts     *sitter.Tree
	Source []byte
}

// Parse parses JavaScript source. A new parser is created per call:
// tree-sitter parsers are not safe for concurrent use, and per-file
// parsing keeps workers independent.
func Parse(src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(jsLanguage)

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree")
	}
	return &Tree{ts: tree, Source: src}, nil
}

// Root returns the tree's root node.
func (t *Tree) Root() *sitter.Node {
	return t.ts.RootNode()
}

// Close releases the underlying tree.
func (t *Tree) Close() {
	t.ts.Close()
}

// HasSyntaxError reports whether the parse produced any error nodes.
func (t *Tree) HasSyntaxError() bool {
	return t.Root().HasError()
}

// Text returns the source text covered by a node.
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return string(src[n.StartByte():n.EndByte()])
}

// Walk visits nodes in pre-order. Returning false from visit skips the
// node's children.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}

// Line returns the 1-based line number of a node.
func Line(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

// Column returns the 1-based column number of a node.
func Column(n *sitter.Node) int {
	return int(n.StartPosition().Column) + 1
}
