package pfqcore

import (
	"encoding/binary"

	"github.com/pfq-lang/pfqcore/internal/symtab"
)

// Fixture helpers for constructing descriptor graphs and synthetic frames
// in tests and demos without repeating encoding boilerplate. They are part
// of the public surface so downstream users of the library can lean on
// them too.

// IntArg encodes an Int argument blob (8 bytes, little-endian).
func IntArg(v int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

// Uint64Arg encodes a UInt64 argument blob.
func Uint64Arg(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// StringArg encodes a String argument blob (raw UTF-8 bytes; these exceed
// the inline threshold for any message over 8 bytes and land in the arena).
func StringArg(s string) []byte {
	return []byte(s)
}

// MonadicDescr builds a monadic node descriptor. nargs is the count of
// argument types to bind off the symbol's signature; left/right index the
// successors, NoIndex for none.
func MonadicDescr(symbol string, nargs int, arg []byte, left, right int) FunctionalDescr {
	return FunctionalDescr{
		Symbol:  symbol,
		Kind:    KindMonadic,
		Nargs:   nargs,
		ArgPtr:  arg,
		ArgSize: len(arg),
		Fun:     NoIndex,
		Left:    left,
		Right:   right,
	}
}

// PredicateDescr builds a predicate node descriptor with no sub-function.
func PredicateDescr(symbol string, nargs int, arg []byte) FunctionalDescr {
	return FunctionalDescr{
		Symbol:  symbol,
		Kind:    KindPredicate,
		Nargs:   nargs,
		ArgPtr:  arg,
		ArgSize: len(arg),
		Fun:     NoIndex,
		Left:    NoIndex,
		Right:   NoIndex,
	}
}

// HigherOrderDescr builds a higher-order node descriptor referencing the
// predicate at index fun.
func HigherOrderDescr(symbol string, nargs, fun, left, right int) FunctionalDescr {
	return FunctionalDescr{
		Symbol: symbol,
		Kind:   KindHigherOrder,
		Nargs:  nargs,
		Fun:    fun,
		Left:   left,
		Right:  right,
	}
}

// NewComputationDescr assembles a descriptor graph from nodes, with the
// given entry point.
func NewComputationDescr(entry int, nodes ...FunctionalDescr) *ComputationDescr {
	return &ComputationDescr{
		Size:       len(nodes),
		EntryPoint: entry,
		Fun:        nodes,
	}
}

// ReferenceSymbols returns the built-in symbol table (dummy, inc, dec,
// mark, crc16, filter, log_*), usable as Options.Symbols.
func ReferenceSymbols() SymbolTable {
	return symtab.Reference(nil)
}

// EthFrame synthesizes an Ethernet frame of the given total length with a
// deterministic byte pattern, long enough for the L3 summarizer to parse
// when proto is one of the IPv4 protocol numbers (6 TCP, 17 UDP, 1 ICMP).
func EthFrame(length int, proto byte) []byte {
	frame := make([]byte, length)
	for i := range frame {
		frame[i] = byte(i)
	}
	if length >= 14+20 {
		frame[12], frame[13] = 0x08, 0x00 // EtherType IPv4
		frame[14] = 0x45                  // version 4, IHL 5
		frame[14+9] = proto
	}
	return frame
}
