package define

import (
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yacobolo/sift"
	"github.com/yacobolo/sift/internal/jsparse"
)

// edit replaces src[start:end) with text.
type edit struct {
	start, end uint
	text       string
}

// applyEdits rewrites src back to front so earlier offsets stay valid.
// Edits never overlap: the walk stops descending once a node is edited.
func applyEdits(src []byte, edits []edit) []byte {
	sorted := append([]edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	out := append([]byte(nil), src...)
	for _, e := range sorted {
		out = append(out[:e.start], append([]byte(e.text), out[e.end:]...)...)
	}
	return out
}

// findSubstitutions walks the tree top-down collecting free occurrences
// of configured keys. Visiting member expressions before their parts
// means the longest configured key wins: with both "a.b" and "a.b.c"
// configured, "a.b.c" in source matches "a.b.c".
func findSubstitutions(root *sitter.Node, src []byte, vars map[string]Literal, path string) ([]edit, []sift.Diagnostic) {
	var edits []edit
	var diags []sift.Diagnostic

	jsparse.Walk(root, func(n *sitter.Node) bool {
		kind := n.Kind()
		if kind != "identifier" && kind != "member_expression" {
			return true
		}

		keyPath, ok := memberPath(n, src)
		if !ok {
			return true
		}
		lit, configured := vars[keyPath]
		if !configured {
			// A shorter configured key may match a sub-path.
			return true
		}

		if !isReferencePosition(n) {
			return false
		}

		rootName := rootIdentifier(keyPath)
		shadowed, ambiguous := analyzeScope(n, rootName, src)
		if ambiguous {
			diags = append(diags, sift.Diagnostic{
				Category:   sift.DiagShadowedKey,
				Severity:   sift.SeverityWarning,
				File:       path,
				Line:       jsparse.Line(n),
				Column:     jsparse.Column(n),
				Message:    "cannot determine whether " + keyPath + " is shadowed (with block); occurrence left unchanged",
				SourceLine: sourceLineAt(src, n),
			})
			return false
		}
		if shadowed {
			return false
		}

		edits = append(edits, edit{start: n.StartByte(), end: n.EndByte(), text: lit.JS()})
		return false
	})

	return edits, diags
}

// memberPath flattens an identifier or dotted member expression into a
// key path. Computed access and non-identifier bases have no path.
func memberPath(n *sitter.Node, src []byte) (string, bool) {
	switch n.Kind() {
	case "identifier":
		return jsparse.Text(n, src), true
	case "member_expression":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil || prop.Kind() != "property_identifier" {
			return "", false
		}
		base, ok := memberPath(obj, src)
		if !ok {
			return "", false
		}
		return base + "." + jsparse.Text(prop, src), true
	}
	return "", false
}

func rootIdentifier(keyPath string) string {
	for i := 0; i < len(keyPath); i++ {
		if keyPath[i] == '.' {
			return keyPath[:i]
		}
	}
	return keyPath
}

// isReferencePosition reports whether n reads the name rather than
// binding or assigning it. Binding positions must never be rewritten:
// replacing a declarator name with a literal is not a substitution, it
// is corruption.
func isReferencePosition(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return true
	}

	switch parent.Kind() {
	case "variable_declarator":
		return !isField(parent, "name", n)
	case "function_declaration", "generator_function_declaration",
		"function_expression", "generator_function",
		"class_declaration", "class":
		return !isField(parent, "name", n)
	case "formal_parameters":
		return false
	case "arrow_function":
		// Single-parameter arrow: x => ...
		return !isField(parent, "parameter", n)
	case "assignment_expression", "augmented_assignment_expression":
		return !isField(parent, "left", n)
	case "for_in_statement":
		// The loop variable of for-in/for-of binds, the iterated
		// expression is a reference.
		return !isField(parent, "left", n)
	case "update_expression":
		return false
	case "assignment_pattern":
		// Default values are expressions; the left side binds.
		return !isField(parent, "left", n)
	case "object_pattern", "array_pattern", "rest_pattern", "pair_pattern":
		return false
	case "pair":
		return !isField(parent, "key", n)
	case "import_specifier", "namespace_import", "import_clause":
		return false
	case "member_expression":
		// The object side is a reference; the property side is not,
		// but property positions are property_identifier nodes and
		// never reach here.
		return isField(parent, "object", n)
	}
	return true
}

// isField reports whether child occupies the named field of parent.
// Node handles are not stable across lookups, so compare byte ranges.
func isField(parent *sitter.Node, field string, child *sitter.Node) bool {
	f := parent.ChildByFieldName(field)
	return f != nil && f.StartByte() == child.StartByte() && f.EndByte() == child.EndByte()
}

// sourceLineAt extracts the line of source containing a node, for
// diagnostics.
func sourceLineAt(src []byte, n *sitter.Node) string {
	start := int(n.StartByte())
	if start > len(src) {
		start = len(src)
	}
	lineStart := start
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := start
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	return string(src[lineStart:lineEnd])
}
