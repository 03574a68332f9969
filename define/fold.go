package define

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yacobolo/sift/internal/jsparse"
)

// foldConstants repeatedly folds constant expressions and eliminates
// dead branches until the source stops changing or maxPasses is hit.
// Each pass re-parses: folding an if condition to a literal in one pass
// makes the whole statement foldable in the next.
func foldConstants(src []byte, maxPasses int) ([]byte, error) {
	for pass := 0; pass < maxPasses; pass++ {
		out, changed, err := foldOnce(src)
		if err != nil {
			return nil, err
		}
		if !changed {
			return src, nil
		}
		src = out
	}
	return src, nil
}

func foldOnce(src []byte) ([]byte, bool, error) {
	tree, err := jsparse.Parse(src)
	if err != nil {
		return nil, false, err
	}
	defer tree.Close()

	var edits []edit
	jsparse.Walk(tree.Root(), func(n *sitter.Node) bool {
		if text, ok := foldNode(n, src); ok {
			edits = append(edits, edit{start: n.StartByte(), end: n.EndByte(), text: text})
			// Outermost fold wins; the next pass sees the rest.
			return false
		}
		return true
	})

	if len(edits) == 0 {
		return src, false, nil
	}
	return applyEdits(src, edits), true, nil
}

// jsValue is a statically known literal value.
type jsValue struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
}

func (v jsValue) truthy() bool {
	switch v.kind {
	case BoolValue:
		return v.b
	case NumberValue:
		return v.n != 0
	default:
		return v.s != ""
	}
}

// literalValue evaluates a node that is statically a literal, looking
// through parentheses. Strings with escape sequences are not evaluated:
// their runtime value differs from their source text.
func literalValue(n *sitter.Node, src []byte) (jsValue, bool) {
	if n == nil {
		return jsValue{}, false
	}
	switch n.Kind() {
	case "true":
		return jsValue{kind: BoolValue, b: true}, true
	case "false":
		return jsValue{kind: BoolValue, b: false}, true
	case "number":
		f, err := strconv.ParseFloat(jsparse.Text(n, src), 64)
		if err != nil {
			return jsValue{}, false
		}
		return jsValue{kind: NumberValue, n: f}, true
	case "string":
		text := jsparse.Text(n, src)
		if len(text) < 2 || strings.ContainsRune(text, '\\') {
			return jsValue{}, false
		}
		return jsValue{kind: StringValue, s: text[1 : len(text)-1]}, true
	case "parenthesized_expression":
		return literalValue(firstNamedChild(n), src)
	}
	return jsValue{}, false
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child.IsNamed() {
			return child
		}
	}
	return nil
}

// foldNode returns replacement text for a node whose value or branch
// outcome is statically known.
func foldNode(n *sitter.Node, src []byte) (string, bool) {
	switch n.Kind() {
	case "binary_expression":
		return foldBinary(n, src)
	case "unary_expression":
		return foldUnary(n, src)
	case "ternary_expression":
		return foldTernary(n, src)
	case "if_statement":
		return foldIf(n, src)
	}
	return "", false
}

func foldBinary(n *sitter.Node, src []byte) (string, bool) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	op := jsparse.Text(n.ChildByFieldName("operator"), src)

	lv, lok := literalValue(left, src)
	rv, rok := literalValue(right, src)

	switch op {
	case "===", "!==":
		if !lok || !rok {
			return "", false
		}
		// Strict comparison across different literal kinds is
		// statically false regardless of values.
		eq := lv.kind == rv.kind && sameValue(lv, rv)
		return strconv.FormatBool(eq == (op == "===")), true

	case "==", "!=":
		// Loose comparison coerces across kinds; only fold the
		// same-kind case where it agrees with strict comparison.
		if !lok || !rok || lv.kind != rv.kind {
			return "", false
		}
		eq := sameValue(lv, rv)
		return strconv.FormatBool(eq == (op == "==")), true

	case "&&":
		if !lok {
			return "", false
		}
		if lv.truthy() {
			return jsparse.Text(right, src), true
		}
		return jsparse.Text(left, src), true

	case "||":
		if !lok {
			return "", false
		}
		if lv.truthy() {
			return jsparse.Text(left, src), true
		}
		return jsparse.Text(right, src), true
	}
	return "", false
}

func sameValue(a, b jsValue) bool {
	switch a.kind {
	case BoolValue:
		return a.b == b.b
	case NumberValue:
		return a.n == b.n
	default:
		return a.s == b.s
	}
}

func foldUnary(n *sitter.Node, src []byte) (string, bool) {
	op := jsparse.Text(n.ChildByFieldName("operator"), src)
	if op != "!" {
		return "", false
	}
	v, ok := literalValue(n.ChildByFieldName("argument"), src)
	if !ok {
		return "", false
	}
	return strconv.FormatBool(!v.truthy()), true
}

func foldTernary(n *sitter.Node, src []byte) (string, bool) {
	cond, ok := literalValue(n.ChildByFieldName("condition"), src)
	if !ok {
		return "", false
	}
	if cond.truthy() {
		return jsparse.Text(n.ChildByFieldName("consequence"), src), true
	}
	return jsparse.Text(n.ChildByFieldName("alternative"), src), true
}

// foldIf collapses an if statement with a statically known condition to
// the live branch's body. The dead branch disappears entirely, which is
// the point: code guarded by an impossible condition never ships.
func foldIf(n *sitter.Node, src []byte) (string, bool) {
	cond, ok := literalValue(n.ChildByFieldName("condition"), src)
	if !ok {
		return "", false
	}
	if cond.truthy() {
		return unwrapBranch(n.ChildByFieldName("consequence"), src), true
	}
	alt := n.ChildByFieldName("alternative")
	if alt == nil {
		return "", true
	}
	if alt.Kind() == "else_clause" {
		// The else clause wraps either a block or a chained if.
		return unwrapBranch(firstNamedChild(alt), src), true
	}
	return unwrapBranch(alt, src), true
}

// unwrapBranch renders a branch as standalone statements, stripping the
// surrounding braces from a block.
func unwrapBranch(stmt *sitter.Node, src []byte) string {
	if stmt == nil {
		return ""
	}
	if stmt.Kind() == "statement_block" {
		inner := src[stmt.StartByte()+1 : stmt.EndByte()-1]
		return strings.TrimSpace(string(inner))
	}
	return jsparse.Text(stmt, src)
}
