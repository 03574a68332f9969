package sift

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type simpleKind int

const (
	simpleClass simpleKind = iota
	simpleID
	simpleType
	simpleUniversal
	simpleAttr
	simplePseudo
)

// simpleSelector is one component of a (possibly compound, possibly
// combinator-joined) selector. Name carries the sigil-stripped form:
// ".btn" -> "btn", "#app" -> "app".
type simpleSelector struct {
	kind simpleKind
	name string
}

// matchable reports whether the component participates in usage
// matching. Attribute selectors and pseudo-classes never gate
// retention: the analyzer cannot observe runtime state.
func (s simpleSelector) matchable() bool {
	switch s.kind {
	case simpleClass, simpleID, simpleType:
		return true
	}
	return false
}

// decomposeSelector parses a single selector (no commas) into its
// simple-selector components across all compound units. Combinators are
// dropped; the retention policy treats all units of one selector alike.
func decomposeSelector(sel string) ([]simpleSelector, error) {
	lexer := css.NewLexer(parse.NewInputString(sel))
	var parts []simpleSelector

	for {
		tt, data := lexer.Next()
		text := string(data)

		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, newError(KindInvalidSelector, "", "selector %q: %v", sel, err)
			}
			if len(parts) == 0 {
				return nil, newError(KindInvalidSelector, "", "empty selector %q", sel)
			}
			return parts, nil

		case css.WhitespaceToken:
			continue

		case css.DelimToken:
			switch text {
			case ".":
				tt2, data2 := lexer.Next()
				if tt2 != css.IdentToken {
					return nil, newError(KindInvalidSelector, "", "selector %q: expected class name after '.'", sel)
				}
				parts = append(parts, simpleSelector{kind: simpleClass, name: string(data2)})
			case "*":
				parts = append(parts, simpleSelector{kind: simpleUniversal})
			case ">", "+", "~", "&":
				// combinators and the nesting selector carry no name
			default:
				return nil, newError(KindInvalidSelector, "", "selector %q: unexpected %q", sel, text)
			}

		case css.HashToken:
			name := strings.TrimPrefix(text, "#")
			if name == "" {
				return nil, newError(KindInvalidSelector, "", "selector %q: empty id", sel)
			}
			parts = append(parts, simpleSelector{kind: simpleID, name: name})

		case css.IdentToken:
			parts = append(parts, simpleSelector{kind: simpleType, name: text})

		case css.LeftBracketToken:
			if err := skipUntil(lexer, css.RightBracketToken); err != nil {
				return nil, newError(KindInvalidSelector, "", "selector %q: unterminated attribute selector", sel)
			}
			parts = append(parts, simpleSelector{kind: simpleAttr})

		case css.ColonToken:
			if err := consumePseudo(lexer); err != nil {
				return nil, newError(KindInvalidSelector, "", "selector %q: %v", sel, err)
			}
			parts = append(parts, simpleSelector{kind: simplePseudo})

		case css.FunctionToken:
			if err := skipParens(lexer); err != nil {
				return nil, newError(KindInvalidSelector, "", "selector %q: unterminated function", sel)
			}

		case css.CommaToken:
			return nil, newError(KindInvalidSelector, "", "selector %q: unexpected comma", sel)

		default:
			return nil, newError(KindInvalidSelector, "", "selector %q: unexpected token %q", sel, text)
		}
	}
}

// consumePseudo reads the remainder of a pseudo-class or pseudo-element
// after its leading colon. Functional pseudo-class arguments are skipped
// entirely: :not(.foo) neither requires nor forbids .foo.
func consumePseudo(lexer *css.Lexer) error {
	tt, data := lexer.Next()

	// Pseudo-element double colon.
	if tt == css.ColonToken {
		tt, data = lexer.Next()
	}

	switch tt {
	case css.IdentToken:
		return nil
	case css.FunctionToken:
		return skipParens(lexer)
	default:
		return newError(KindInvalidSelector, "", "expected pseudo-class name, got %q", string(data))
	}
}

// skipParens consumes tokens until the parenthesis group opened by a
// function token is balanced again.
func skipParens(lexer *css.Lexer) error {
	depth := 1
	for depth > 0 {
		tt, _ := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return io.ErrUnexpectedEOF
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		}
	}
	return nil
}

// skipUntil consumes tokens until the given type is seen.
func skipUntil(lexer *css.Lexer, until css.TokenType) error {
	for {
		tt, _ := lexer.Next()
		if tt == until {
			return nil
		}
		if tt == css.ErrorToken {
			return io.ErrUnexpectedEOF
		}
	}
}
