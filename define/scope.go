package define

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yacobolo/sift/internal/jsparse"
)

// analyzeScope walks from an occurrence to the root, checking each
// enclosing scope for a binding of name. An occurrence under any local
// binding is shadowed and must not be substituted. A with block makes
// the question undecidable statically, so the occurrence is reported
// ambiguous and skipped.
func analyzeScope(n *sitter.Node, name string, src []byte) (shadowed, ambiguous bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "with_statement":
			return false, true

		case "statement_block", "for_statement", "switch_body":
			if blockBinds(p, name, src) {
				return true, false
			}

		case "for_in_statement":
			// for-of/for-in loop variables bind for the loop body.
			if patternBinds(p.ChildByFieldName("left"), name, src) {
				return true, false
			}

		case "class_declaration", "class":
			// A class name is visible inside its own body, for class
			// expressions as well as declarations.
			if nameNode := p.ChildByFieldName("name"); nameNode != nil && jsparse.Text(nameNode, src) == name {
				return true, false
			}

		case "catch_clause":
			if param := p.ChildByFieldName("parameter"); patternBinds(param, name, src) {
				return true, false
			}

		case "function_declaration", "generator_function_declaration",
			"function_expression", "generator_function",
			"arrow_function", "method_definition":
			if functionBinds(p, name, src) {
				return true, false
			}

		case "program":
			if blockBinds(p, name, src) || hoistedBinds(p, name, src) {
				return true, false
			}
		}
	}
	return false, false
}

// blockBinds checks the direct statements of a block scope for lexical
// bindings of name: let, const, class, function declarations, imports.
// var declarations hoist past blocks and are handled at function and
// program scope by hoistedBinds.
func blockBinds(scope *sitter.Node, name string, src []byte) bool {
	for i := uint(0); i < scope.ChildCount(); i++ {
		if declarationBinds(scope.Child(i), name, src) {
			return true
		}
	}
	return false
}

// declarationBinds reports whether a single statement introduces name.
func declarationBinds(stmt *sitter.Node, name string, src []byte) bool {
	if stmt == nil {
		return false
	}
	switch stmt.Kind() {
	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < stmt.ChildCount(); i++ {
			child := stmt.Child(i)
			if child.Kind() != "variable_declarator" {
				continue
			}
			if patternBinds(child.ChildByFieldName("name"), name, src) {
				return true
			}
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if nameNode := stmt.ChildByFieldName("name"); nameNode != nil {
			return jsparse.Text(nameNode, src) == name
		}
	case "import_statement":
		// Default imports, named imports, aliases, and namespace
		// imports all bind plain identifier nodes.
		return patternBinds(stmt, name, src)
	case "export_statement", "switch_case", "switch_default":
		// Exported declarations and case-clause bodies wrap the
		// declaration forms above.
		for i := uint(0); i < stmt.ChildCount(); i++ {
			if declarationBinds(stmt.Child(i), name, src) {
				return true
			}
		}
	}
	return false
}

// functionBinds checks a function scope: its own name (named function
// expressions bind inside their body), its parameters, and hoisted
// declarations anywhere in the body.
func functionBinds(fn *sitter.Node, name string, src []byte) bool {
	if nameNode := fn.ChildByFieldName("name"); nameNode != nil {
		if jsparse.Text(nameNode, src) == name {
			return true
		}
	}
	if patternBinds(fn.ChildByFieldName("parameters"), name, src) {
		return true
	}
	if patternBinds(fn.ChildByFieldName("parameter"), name, src) {
		return true
	}
	return hoistedBinds(fn.ChildByFieldName("body"), name, src)
}

// hoistedBinds scans a function or program body for var and function
// declarations of name at any block depth, without crossing into nested
// function scopes where those declarations would bind locally instead.
func hoistedBinds(body *sitter.Node, name string, src []byte) bool {
	if body == nil {
		return false
	}
	found := false
	jsparse.Walk(body, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n != body && isFunctionScope(n) {
			return false
		}
		switch n.Kind() {
		case "variable_declaration":
			for i := uint(0); i < n.ChildCount(); i++ {
				child := n.Child(i)
				if child.Kind() == "variable_declarator" && patternBinds(child.ChildByFieldName("name"), name, src) {
					found = true
				}
			}
		case "function_declaration", "generator_function_declaration":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil && jsparse.Text(nameNode, src) == name {
				found = true
			}
		case "for_in_statement":
			// for (var x of xs) hoists x like any other var.
			if kind := n.ChildByFieldName("kind"); kind != nil && jsparse.Text(kind, src) == "var" {
				if patternBinds(n.ChildByFieldName("left"), name, src) {
					found = true
				}
			}
		}
		return !found
	})
	return found
}

func isFunctionScope(n *sitter.Node) bool {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

// patternBinds reports whether a binding pattern (plain identifier,
// destructuring, rest, parameter list) introduces name. Object pattern
// keys are property_identifier nodes and never match.
func patternBinds(pattern *sitter.Node, name string, src []byte) bool {
	if pattern == nil {
		return false
	}
	found := false
	jsparse.Walk(pattern, func(n *sitter.Node) bool {
		if found {
			return false
		}
		switch n.Kind() {
		case "identifier", "shorthand_property_identifier_pattern":
			if jsparse.Text(n, src) == name {
				found = true
			}
		}
		return !found
	})
	return found
}
