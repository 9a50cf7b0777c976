// Package pfqerr defines pfqcore's structured install-time error, shared by
// every internal package so errors collected from signature binding, the
// validator, the arena, and the linker can be surfaced through one type at
// the root package boundary.
package pfqerr

import "fmt"

// Kind categorizes an install-time failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindSymbol     Kind = "symbol"
	KindMemory     Kind = "memory"
	KindInitHook   Kind = "init-hook"
)

// Error is pfqcore's structured error. All install-path failures
// (validator, arena, linker) are surfaced as *Error.
type Error struct {
	Op    string // operation that failed, e.g. "validate", "rtlink"
	Node  int    // node index, -1 if not applicable
	Kind  Kind
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Node >= 0 {
		return fmt.Sprintf("pfqcore: %s: node %d: %s: %s", e.Op, e.Node, e.Kind, e.Msg)
	}
	return fmt.Sprintf("pfqcore: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Inner }

func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

// New builds a node-less *Error.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Node: -1, Kind: kind, Msg: msg}
}

// NewNode builds an *Error scoped to a specific node index.
func NewNode(op string, node int, kind Kind, msg string) *Error {
	return &Error{Op: op, Node: node, Kind: kind, Msg: msg}
}

// Wrap attaches op/kind context to an existing error.
func Wrap(op string, kind Kind, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Node: -1, Kind: kind, Msg: inner.Error(), Inner: inner}
}
