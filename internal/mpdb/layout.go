// Package mpdb implements the double-buffered, multi-producer
// single-consumer packet ring: wait-free slot reservation for concurrent
// capture threads, a release-fenced per-slot commit protocol, and a
// single-reader drain/swap on the consumer side. Producers blindly claim a
// slot via fetch-and-add on a single data word; the consumer alone
// advances the read side.
package mpdb

// indexShift is the bit position of q_index within the atomic data word;
// the remaining low bits encode q_len. The split is part of the reader
// ABI: the top bit carries q_index, giving q_len a 31-bit range that
// comfortably covers any realistic q_slots.
const indexShift = 31

// lenMask isolates q_len's bits within the data word.
const lenMask = (uint32(1) << indexShift) - 1

// DecodeIndex extracts q_index (0 or 1) from a raw data word. This is the
// DBMP_QUEUE_INDEX decoder of the reader ABI.
func DecodeIndex(data uint32) uint32 { return data >> indexShift }

// DecodeLen extracts q_len (the slot count claimed so far in the current
// half) from a raw data word. This is the DBMP_QUEUE_LEN decoder.
func DecodeLen(data uint32) uint32 { return data & lenMask }

// encodeSwap builds the data word a consumer publishes after draining a
// half: q_len cleared, q_index flipped to the other half.
func encodeSwap(prevIndex uint32) uint32 {
	return (prevIndex ^ 1) << indexShift
}

// headerSize is the byte size reserved at the front of the mapped region
// for the queue descriptor header (data word, poll_wait flag), padded to a
// cache-line boundary so the two packet halves that follow start aligned.
const headerSize = 64

const (
	offData     = 0
	offPollWait = 4
)
