package sift

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// At-rules whose block is itself a list of rules and must be filtered
// recursively. Everything else with a block (@keyframes, @font-face,
// @page, ...) is opaque and always retained.
var groupAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@layer":     true,
	"@container": true,
	"@scope":     true,
}

// cssScanner wraps the css lexer with byte-offset tracking so rule text
// can be sliced verbatim out of the input.
type cssScanner struct {
	lexer   *css.Lexer
	content string
	pos     int
}

func newCSSScanner(content string) *cssScanner {
	return &cssScanner{
		lexer:   css.NewLexer(parse.NewInputString(content)),
		content: content,
	}
}

// next returns the token type, its text, and its start offset.
func (s *cssScanner) next() (css.TokenType, string, int) {
	tt, data := s.lexer.Next()
	start := s.pos
	s.pos += len(data)
	return tt, string(data), start
}

// ParseStylesheet splits CSS text into an ordered rule sequence. Rule
// order, selector text, and body text are preserved byte-for-byte; only
// the rule boundaries are computed here. An unbalanced block yields an
// InvalidSelectorSyntax error alongside the rules parsed so far.
func ParseStylesheet(content, path string) (*Stylesheet, error) {
	rules, err := parseRuleList(content, path)
	for i := range rules {
		rules[i].index = i
	}
	return &Stylesheet{Path: path, Rules: rules}, err
}

func parseRuleList(content, path string) ([]Rule, error) {
	s := newCSSScanner(content)
	var rules []Rule

	for {
		tt, text, start := s.next()

		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && err != io.EOF {
				return rules, wrapError(KindInvalidSelector, path, "lexing stylesheet", err)
			}
			return rules, nil

		case css.WhitespaceToken, css.CommentToken, css.SemicolonToken, css.CDOToken, css.CDCToken:
			continue

		case css.AtKeywordToken:
			rule, err := s.parseAtRule(text, start, path)
			if err != nil {
				return rules, err
			}
			rules = append(rules, rule)

		default:
			rule, err := s.parseQualifiedRule(start, path)
			if err != nil {
				return rules, err
			}
			rules = append(rules, rule)
		}
	}
}

// parseAtRule handles both preamble at-rules (@import ...;) and block
// at-rules. The at-keyword token has already been consumed.
func (s *cssScanner) parseAtRule(keyword string, start int, path string) (Rule, error) {
	preludeStart := s.pos

	for {
		tt, _, tstart := s.next()

		switch tt {
		case css.ErrorToken:
			// Preamble at-rule at EOF without semicolon, e.g. a trailing
			// @charset. Keep it verbatim.
			return Rule{
				AtKeyword: keyword,
				Prelude:   strings.TrimSpace(s.content[preludeStart:s.pos]),
				Raw:       s.content[start:s.pos],
				Opaque:    true,
			}, nil

		case css.SemicolonToken:
			return Rule{
				AtKeyword: keyword,
				Prelude:   strings.TrimSpace(s.content[preludeStart:tstart]),
				Raw:       s.content[start:s.pos],
				Opaque:    true,
			}, nil

		case css.LeftBraceToken:
			prelude := strings.TrimSpace(s.content[preludeStart:tstart])
			innerStart := s.pos
			innerEnd, err := s.skipBlock(path)
			if err != nil {
				return Rule{}, err
			}

			rule := Rule{
				AtKeyword: keyword,
				Prelude:   prelude,
				Raw:       s.content[start:s.pos],
			}
			if groupAtRules[keyword] {
				children, err := parseRuleList(s.content[innerStart:innerEnd], path)
				if err != nil {
					return Rule{}, err
				}
				rule.Children = children
			} else {
				rule.Body = s.content[innerStart:innerEnd]
				rule.Opaque = true
			}
			return rule, nil
		}
	}
}

// parseQualifiedRule handles selector { body }. The first selector token
// has already been consumed; start is its offset.
func (s *cssScanner) parseQualifiedRule(start int, path string) (Rule, error) {
	for {
		tt, _, tstart := s.next()

		switch tt {
		case css.ErrorToken:
			return Rule{}, newError(KindInvalidSelector, path,
				"unexpected end of input in selector %q", strings.TrimSpace(s.content[start:s.pos]))

		case css.LeftBraceToken:
			selectorText := s.content[start:tstart]
			bodyStart := s.pos
			bodyEnd, err := s.skipBlock(path)
			if err != nil {
				return Rule{}, err
			}
			return Rule{
				Selectors: splitSelectorList(selectorText),
				Body:      s.content[bodyStart:bodyEnd],
				Raw:       s.content[start:s.pos],
			}, nil
		}
	}
}

// skipBlock consumes tokens until the brace that closes the block whose
// opening brace was just consumed, returning the offset of that closing
// brace. Nested blocks are tracked by depth.
func (s *cssScanner) skipBlock(path string) (int, error) {
	depth := 1
	for {
		tt, _, tstart := s.next()
		switch tt {
		case css.ErrorToken:
			return 0, newError(KindInvalidSelector, path, "unbalanced block: missing closing brace")
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				return tstart, nil
			}
		}
	}
}

// splitSelectorList splits a selector list on top-level commas,
// respecting parentheses and brackets inside functional pseudo-classes
// and attribute selectors.
func splitSelectorList(text string) []string {
	var out []string
	var current strings.Builder
	depth := 0

	for _, r := range text {
		switch r {
		case '(', '[':
			depth++
			current.WriteRune(r)
		case ')', ']':
			depth--
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}

	if sel := strings.TrimSpace(current.String()); sel != "" {
		out = append(out, sel)
	}
	return out
}

// Render emits the reduced stylesheet. Leaf and opaque rules are written
// with their original text; filtered group at-rules are reassembled
// around their surviving children.
func (s *Stylesheet) Render() string {
	var b strings.Builder
	renderRules(&b, s.Rules, "")
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func renderRules(b *strings.Builder, rules []Rule, indent string) {
	for i, r := range rules {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if r.IsAtRule() && !r.Opaque {
			b.WriteString(indent)
			b.WriteString(r.AtKeyword)
			if r.Prelude != "" {
				b.WriteString(" ")
				b.WriteString(r.Prelude)
			}
			b.WriteString(" {\n")
			renderRules(b, r.Children, indent)
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString("}")
			continue
		}
		b.WriteString(indent)
		b.WriteString(r.Raw)
	}
}
