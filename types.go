package pfqcore

import (
	"github.com/pfq-lang/pfqcore/internal/descr"
	"github.com/pfq-lang/pfqcore/internal/group"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/mpdb"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/packet"
)

// Public aliases over the internal data model, so callers assemble
// descriptor graphs, register symbols, and read queue slots without
// importing internal packages.

// Buf is the packet handle threaded through a computation: frame length,
// payload bytes, and the per-packet monad state.
type Buf = packet.Buf

// State is Buf's per-packet monad state.
type State = packet.State

// Fanout is the classification word carried in a Buf's state.
type Fanout = packet.Fanout

// ActionKind is the action attached to a Buf after a node runs.
type ActionKind = packet.ActionKind

const (
	ActionCopy  = packet.ActionCopy
	ActionSteal = packet.ActionSteal
	ActionDrop  = packet.ActionDrop
)

// DefaultClassMask is the all-classes mask to register a group with when it
// needs no narrower one; the evaluator installs the group's registered mask.
const DefaultClassMask = packet.DefaultClassMask

// NodeKind identifies one of the five functional node kinds.
type NodeKind = descr.Kind

const (
	KindMonadic     = descr.KindMonadic
	KindHigherOrder = descr.KindHigherOrder
	KindPredicate   = descr.KindPredicate
	KindCombinator  = descr.KindCombinator
	KindProperty    = descr.KindProperty
)

// NoIndex marks a descriptor index field as absent.
const NoIndex = descr.NoIndex

// FunctionalDescr is one user-supplied node descriptor.
type FunctionalDescr = descr.Functional

// ComputationDescr is the user-supplied descriptor graph handed to
// Engine.Install.
type ComputationDescr = descr.Computation

// SymbolEntry is what a symbol table hands back for a resolved name.
type SymbolEntry = interfaces.SymbolEntry

// SymbolTable is the lookup oracle computations resolve against.
type SymbolTable = interfaces.SymbolTable

// Observer receives run and queue signals; MetricsObserver (recording into
// Metrics), PrometheusObserver and NoOpObserver are the bundled
// implementations.
type Observer = interfaces.Observer

// GroupContext is the per-group state handed opaquely to combinators
// through Buf.State.Context.
type GroupContext = group.Context

// Callable shapes a SymbolEntry.Fn must take, per node kind.
type (
	MonadicFn          = node.MonadicFn
	HigherOrderFn      = node.HigherOrderFn
	PredicateFn        = node.PredicateFn
	PredicateWithSubFn = node.PredicateWithSubFn
	CombinatorFn       = node.CombinatorFn
	PropertyFn         = node.PropertyFn
)

// Queue is the double-buffered multi-producer single-consumer packet ring.
type Queue = mpdb.Queue

// QueueParams describes one queue's geometry.
type QueueParams = mpdb.Params

// Frame is one batch-enqueue input.
type Frame = mpdb.Frame

// SlotHeader is the decoded header of one committed queue slot.
type SlotHeader = mpdb.SlotHeader

// Timestamp is a slot header's capture timestamp.
type Timestamp = mpdb.Timestamp

// SlotHeaderSize is the byte size prefixing every slot's payload region.
const SlotHeaderSize = mpdb.SlotHeaderSize

// DefaultQueueParams returns the default queue geometry.
func DefaultQueueParams() QueueParams {
	return mpdb.DefaultParams()
}
