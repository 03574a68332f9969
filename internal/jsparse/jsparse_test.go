package jsparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestParse(t *testing.T) {
	src := []byte("const x = 1;\n")
	tree, err := Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, tree.HasSyntaxError())
	assert.Equal(t, src, tree.Source)
}

func TestParse_SyntaxError(t *testing.T) {
	tree, err := Parse([]byte("function ( {"))
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.HasSyntaxError())
}

func TestWalk(t *testing.T) {
	src := []byte("call(a, b);\n")
	tree, err := Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	var idents []string
	Walk(tree.Root(), func(n *sitter.Node) bool {
		if n.Kind() == "identifier" {
			idents = append(idents, Text(n, src))
		}
		return true
	})
	assert.Equal(t, []string{"call", "a", "b"}, idents)
}

func TestWalk_SkipChildren(t *testing.T) {
	src := []byte("outer(inner(x));\n")
	tree, err := Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	var visited []string
	Walk(tree.Root(), func(n *sitter.Node) bool {
		if n.Kind() == "call_expression" {
			visited = append(visited, Text(n, src))
			return false
		}
		return true
	})
	assert.Equal(t, []string{"outer(inner(x))"}, visited)
}

func TestLineColumn(t *testing.T) {
	src := []byte("a;\n  b;\n")
	tree, err := Parse(src)
	require.NoError(t, err)
	defer tree.Close()

	var b *sitter.Node
	Walk(tree.Root(), func(n *sitter.Node) bool {
		if n.Kind() == "identifier" && Text(n, src) == "b" {
			b = n
		}
		return true
	})
	require.NotNil(t, b)
	assert.Equal(t, 2, Line(b))
	assert.Equal(t, 3, Column(b))
}
