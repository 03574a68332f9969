// Package define implements the conditional substitution engine:
// free-variable replacement with literal values, constant folding on the
// resulting comparisons, and dead-branch elimination.
//
// The engine parses JavaScript with tree-sitter and only substitutes
// occurrences it can prove free: an identifier path shadowed by any
// enclosing local binding is left untouched, and scopes it cannot
// reason about (with blocks) cause the occurrence to be skipped rather
// than substituted unsoundly.
package define

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yacobolo/sift"
)

// ValueKind discriminates literal replacement values.
type ValueKind int

// Literal value kinds. Values are always literal, never expressions.
const (
	StringValue ValueKind = iota
	NumberValue
	BoolValue
)

// Literal is a replacement value for one free-variable path.
type Literal struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// JS renders the literal in JavaScript source form. Strings are quoted;
// strconv.Quote escaping is a valid JavaScript string literal.
func (l Literal) JS() string {
	switch l.Kind {
	case BoolValue:
		return strconv.FormatBool(l.Bool)
	case NumberValue:
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	default:
		return strconv.Quote(l.Str)
	}
}

// String constructs a string literal.
func String(s string) Literal { return Literal{Kind: StringValue, Str: s} }

// Number constructs a number literal.
func Number(n float64) Literal { return Literal{Kind: NumberValue, Num: n} }

// Bool constructs a boolean literal.
func Bool(b bool) Literal { return Literal{Kind: BoolValue, Bool: b} }

// keyPattern matches well-formed identifier-path keys: a.b.c
var keyPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// ValidKey reports whether s is a well-formed identifier-path key.
func ValidKey(s string) bool {
	return keyPattern.MatchString(s)
}

// ParseValue interprets a raw configuration value: true/false become
// booleans, numerics become numbers, quoted text becomes the unquoted
// string, anything else is taken as a string verbatim.
func ParseValue(s string) Literal {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(n)
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return String(s[1 : len(s)-1])
		}
	}
	return String(s)
}

// ParseMap builds a free-variable map from key=value pairs. Malformed
// keys are a ConfigurationError.
func ParseMap(pairs []string) (map[string]Literal, error) {
	vars := make(map[string]Literal, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, &sift.Error{Kind: sift.KindConfig, Msg: "malformed map entry " + strconv.Quote(pair) + ": want key=value"}
		}
		key = strings.TrimSpace(key)
		if !ValidKey(key) {
			return nil, &sift.Error{Kind: sift.KindConfig, Msg: "malformed free-variable key " + strconv.Quote(key)}
		}
		vars[key] = ParseValue(strings.TrimSpace(value))
	}
	return vars, nil
}
