// Package node holds the materialized computation graph: the output of
// linking, and the
// uniform Apply/Test closures the evaluator and built-in combinators share.
package node

import "github.com/pfq-lang/pfqcore/internal/packet"

// Apply is the callable shape for monadic and higher-order nodes: it
// consumes and returns a Buf (nil terminates the pipeline).
type Apply func(b *packet.Buf) *packet.Buf

// Test is the callable shape for predicate and combinator nodes: a
// boolean-valued function of a Buf.
type Test func(b *packet.Buf) bool

// Extract is the callable shape for property nodes: they pull a scalar out
// of a Buf rather than threading a Buf through the pipeline, so they are
// never reached by the Evaluator's main loop directly — only referenced as
// another node's sub-function.
type Extract func(b *packet.Buf) any

// Kind mirrors descr.Kind without importing it, keeping this package a leaf
// the evaluator and combinators can both depend on without a cycle back to
// the descriptor/validator layer.
type Kind int

const (
	KindMonadic Kind = iota
	KindHigherOrder
	KindPredicate
	KindCombinator
	KindProperty
)

// Node is one linked computation node. Left/Right are interior pointers
// into the owning Computation's Nodes slice, nil meaning
// "none." Apply is populated for monadic/higher-order kinds, Test for
// predicate/combinator kinds, and Extract for property kinds. Exactly one
// of the three is non-nil for any given node.
type Node struct {
	Symbol string
	Kind   Kind

	Apply   Apply
	Test    Test
	Extract Extract

	Left, Right *Node

	Init func() error
	Fini func()
}

// Computation is the linked, evaluable graph produced by the builder.
type Computation struct {
	EntryPoint *Node
	Nodes      []*Node
}
