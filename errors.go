package sift

import (
	"errors"
	"fmt"
)

// Kind classifies errors so callers and the CLI can react without
// string-matching messages.
type Kind string

// Error kinds reported by the analyzer and the substitution engine.
const (
	KindInvalidSelector Kind = "InvalidSelectorSyntax"
	KindEmptyCorpus     Kind = "EmptyCorpus"
	KindShadowedKey     Kind = "ShadowedKeyAmbiguity"
	KindSyntax          Kind = "SyntaxError"
	KindIO              Kind = "IOFailure"
	KindConfig          Kind = "ConfigurationError"
)

// Error is the typed error carried through both pipelines. Per-file
// errors are collected on results rather than aborting a run; only
// configuration problems fail fast.
type Error struct {
	Kind Kind
	Path string // file or selector the error is attributed to
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Path, e.Msg, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// newError builds a typed error without a wrapped cause.
func newError(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// wrapError attaches a cause to a typed error.
func wrapError(kind Kind, path, msg string, err error) *Error {
	return &Error{Kind: kind, Path: path, Msg: msg, Err: err}
}

// KindOf extracts the Kind from any error in the chain. Returns the
// empty string for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
