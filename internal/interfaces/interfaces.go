// Package interfaces defines the seams between pfqcore and its external
// collaborators: the per-group symbol table, the group
// membership table, logging, and metrics observation. The Lang Engine and
// MPDB Queue only ever see these interfaces.
package interfaces

// SymbolEntry is what the symbol table returns for a resolved name: a
// callable, its textual signature, and optional lifecycle hooks.
type SymbolEntry struct {
	// Fn is the resolved callable. Its concrete type depends on the node
	// kind that looked it up (internal/link interprets it).
	Fn any

	// Signature is the textual type signature, e.g. "Buf -> Action Buf".
	Signature string

	// Init runs once after linking, before any packet is evaluated. A
	// non-nil error aborts installation.
	Init func() error

	// Fini runs once at teardown, after the last packet referencing this
	// node has been evaluated.
	Fini func()
}

// SymbolTable resolves a symbol name to its entry. Implementations are
// treated as a pure lookup oracle: pfqcore never mutates the table.
type SymbolTable interface {
	Lookup(name string) (SymbolEntry, bool)
}

// Logger is the narrow logging surface pfqcore depends on. Advisory,
// rate-limited call sites (the log_msg/log_buff/log_packet combinators) use
// Limited; everything else uses the leveled methods directly.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// Limited returns true if a log under the given key is allowed to fire
	// right now, given a minimum interval of everyMillis milliseconds. Implementations must be
	// safe for concurrent use from arbitrarily many evaluator contexts.
	Limited(key string, everyMillis int64) bool
}

// Observer receives point-in-time signals from the Evaluator and the MPDB
// Queue. Implementations must be safe for concurrent use; they are invoked
// from arbitrarily many packet-processing contexts.
type Observer interface {
	ObserveRun(latencyNs uint64, dropped bool)
	ObserveEnqueue(bytes uint64, ok bool)
	ObserveEnqueueOverflow()
	ObserveQueueDepth(qLen uint32)
	ObserveConsumerWake()
}
