package handlers

import (
	"errors"
	"fmt"
	"html"
)

// ErrorKind classifies handler failures for rendering.
type ErrorKind int

const (
	// KindUsage means the command was malformed or lacked a target.
	KindUsage ErrorKind = iota + 1
	// KindPlatform means an outbound call failed.
	KindPlatform
	// KindNotFound means a named filter, note or user does not exist.
	KindNotFound
	// KindInvalid means an argument was well formed but not acceptable.
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindPlatform:
		return "platform"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	}
	return "unknown"
}

// Error is returned by command handlers. Msg is HTML and is shown to the
// user; Err is the underlying cause, if any.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func usage(msg string) error {
	return &Error{Kind: KindUsage, Msg: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func invalid(msg string) error {
	return &Error{Kind: KindInvalid, Msg: msg}
}

// failed wraps a platform error. hint is an optional italic line.
func failed(op string, err error, hint string) error {
	return &Error{Kind: KindPlatform, Op: op, Msg: hint, Err: err}
}

// FormatError renders err as an HTML chat reply.
func FormatError(err error) string {
	var he *Error
	if !errors.As(err, &he) {
		return fmt.Sprintf("❌ <b>Failed:</b> <code>%s</code>", html.EscapeString(err.Error()))
	}
	switch he.Kind {
	case KindUsage:
		return "⚠️ <b>Usage:</b> " + he.Msg
	case KindPlatform:
		text := fmt.Sprintf("❌ <b>%s failed:</b> <code>%s</code>", he.Op, html.EscapeString(causeText(he.Err)))
		if he.Msg != "" {
			text += "\n\n<i>" + he.Msg + "</i>"
		}
		return text
	case KindNotFound:
		return "❓ " + he.Msg
	default:
		return "⚠️ " + he.Msg
	}
}

func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
