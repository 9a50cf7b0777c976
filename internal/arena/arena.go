// Package arena implements the POD argument arena: a
// size-prefixed staging area for per-node argument blobs larger than one
// machine word, consumed linearly in descriptor order during linking.
package arena

import (
	"encoding/binary"

	"github.com/pfq-lang/pfqcore/internal/constants"
	"github.com/pfq-lang/pfqcore/internal/pfqerr"
)

const opArena = "arena"

// Sizer reports the declared argument size of a node, or 0 if the node
// carries no out-of-line argument. It lets Alloc walk any descriptor slice
// without importing the descr package, keeping arena a leaf in the build
// order.
type Sizer func(i int) int

// Alloc computes the total arena size required by n nodes: the sum, over
// every node whose Sizer value exceeds one machine word, of one word plus
// the 8-byte-aligned payload size.
func Alloc(n int, size Sizer) int {
	total := 0
	for i := 0; i < n; i++ {
		s := size(i)
		if s > constants.InlineArgMaxSize {
			total += constants.WordSize + constants.AlignUp(s, 8)
		}
	}
	return total
}

// Arena is a byte buffer consumed linearly by Take, each call reading one
// size-prefixed slot.
type Arena struct {
	buf    []byte
	cursor int
}

// New allocates a zeroed arena of the given total size.
func New(total int) *Arena {
	return &Arena{buf: make([]byte, total)}
}

// Put writes declaredSize as the slot's size word, followed by payload
// copied from src, and advances the cursor by
// one word plus the aligned payload size. It is called once per arena-sized
// node, in descriptor order, while the linker materializes arguments. A src
// whose length is not exactly declaredSize is a copy-from-user failure.
func (a *Arena) Put(declaredSize int, src []byte) ([]byte, error) {
	need := constants.WordSize + constants.AlignUp(declaredSize, 8)
	if a.cursor+need > len(a.buf) {
		return nil, pfqerr.New(opArena, pfqerr.KindMemory, "arena overflow")
	}
	binary.LittleEndian.PutUint64(a.buf[a.cursor:], uint64(declaredSize))
	payload := a.buf[a.cursor+constants.WordSize : a.cursor+constants.WordSize+declaredSize]
	n := copy(payload, src)
	if n != len(src) || n != declaredSize {
		return nil, pfqerr.New(opArena, pfqerr.KindMemory, "copy-from-user failure")
	}
	a.cursor += need
	return payload, nil
}

// Take reads the slot at the current cursor, verifies its size word equals
// declaredSize, and returns the payload slice, advancing the cursor past it.
// This is the read-side of the size-prefixed protocol, used by tests and by
// any consumer that re-walks an already-populated arena.
func (a *Arena) Take(declaredSize int) ([]byte, error) {
	if a.cursor+constants.WordSize > len(a.buf) {
		return nil, pfqerr.New(opArena, pfqerr.KindMemory, "arena exhausted")
	}
	got := binary.LittleEndian.Uint64(a.buf[a.cursor:])
	if int(got) != declaredSize {
		return nil, pfqerr.New(opArena, pfqerr.KindMemory, "slot-mismatch")
	}
	need := constants.WordSize + constants.AlignUp(declaredSize, 8)
	if a.cursor+need > len(a.buf) {
		return nil, pfqerr.New(opArena, pfqerr.KindMemory, "arena exhausted")
	}
	payload := a.buf[a.cursor+constants.WordSize : a.cursor+constants.WordSize+declaredSize]
	a.cursor += need
	return payload, nil
}

// Remaining reports the number of unconsumed bytes.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.cursor
}
