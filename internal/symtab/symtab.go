// Package symtab provides an in-memory symbol table implementation. The
// real per-group symbol table is an external collaborator; this package
// exists so the engine, its tests, and the demo CLI have a concrete
// Lookup oracle pre-populated with the built-in combinator namespace.
package symtab

import (
	"sync"

	"github.com/pfq-lang/pfqcore/internal/combinators"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/node"
)

// Table is a concurrency-safe, in-memory symbol table.
type Table struct {
	mu      sync.RWMutex
	entries map[string]interfaces.SymbolEntry
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[string]interfaces.SymbolEntry)}
}

// Register adds or replaces a symbol entry.
func (t *Table) Register(name string, entry interfaces.SymbolEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = entry
}

// Lookup resolves name to its entry.
func (t *Table) Lookup(name string) (interfaces.SymbolEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[name]
	return e, ok
}

// Reference builds a table pre-populated with the built-in symbol
// namespace, wiring each name to its internal/combinators
// implementation. log is used by the rate-limited log_* entries; a nil log
// falls back to a no-op logger.
func Reference(log interfaces.Logger) *Table {
	if log == nil {
		log = defaultLogger()
	}
	t := New()
	t.Register("dummy", interfaces.SymbolEntry{
		Signature: "Int -> Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.Dummy),
	})
	t.Register("vdummy", interfaces.SymbolEntry{
		Signature: "[Int] -> Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.VDummy),
	})
	t.Register("inc", interfaces.SymbolEntry{
		Signature: "Int -> Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.Inc),
	})
	t.Register("dec", interfaces.SymbolEntry{
		Signature: "Int -> Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.Dec),
	})
	t.Register("mark", interfaces.SymbolEntry{
		Signature: "UInt64 -> Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.Mark),
	})
	t.Register("crc16", interfaces.SymbolEntry{
		Signature: "Buf -> Action Buf",
		Fn:        node.MonadicFn(combinators.CRC16),
	})
	t.Register("crc16_equals", interfaces.SymbolEntry{
		Signature: "Int -> Buf -> Bool",
		Fn:        node.PredicateFn(combinators.CRCEquals),
	})
	// The arrow parser splits naively, so a parenthesized function
	// argument reads as two tokens and these nodes declare nargs=2 to
	// bind past it.
	t.Register("filter", interfaces.SymbolEntry{
		Signature: "(Buf -> Bool) -> Buf -> Action Buf",
		Fn:        node.HigherOrderFn(combinators.Filter),
	})
	t.Register("inv", interfaces.SymbolEntry{
		Signature: "(Buf -> Action Buf) -> Buf -> Action Buf",
		Fn:        node.HigherOrderFn(combinators.InvNode),
	})
	t.Register("log_msg", interfaces.SymbolEntry{
		Signature: "String -> Buf -> Action Buf",
		Fn:        combinators.LogMsg(log),
	})
	t.Register("log_buff", interfaces.SymbolEntry{
		Signature: "Buf -> Action Buf",
		Fn:        combinators.LogBuff(log),
	})
	t.Register("log_packet", interfaces.SymbolEntry{
		Signature: "Buf -> Action Buf",
		Fn:        combinators.LogPacket(log),
	})
	return t
}

func defaultLogger() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)      {}
func (noopLogger) Infof(string, ...any)       {}
func (noopLogger) Warnf(string, ...any)       {}
func (noopLogger) Errorf(string, ...any)      {}
func (noopLogger) Limited(string, int64) bool { return true }
