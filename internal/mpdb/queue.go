package mpdb

import (
	"sync/atomic"
	"unsafe"

	"github.com/pfq-lang/pfqcore/internal/barrier"
	"github.com/pfq-lang/pfqcore/internal/constants"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/pfqerr"
)

const opQueue = "mpdb"

// Params describes the geometry of one queue: per-half slot count, the
// payload capacity of each slot (a fixed header precedes it), and the
// capture offset/caplen an Enqueue applies to the source frame.
type Params struct {
	Slots    int
	SlotSize int
	Offset   int
	Caplen   int
}

// DefaultParams returns the module's default queue geometry
// (constants.DefaultSlots/DefaultSlotSize/DefaultCaplen).
func DefaultParams() Params {
	return Params{
		Slots:    constants.DefaultSlots,
		SlotSize: constants.DefaultSlotSize,
		Offset:   0,
		Caplen:   constants.DefaultCaplen,
	}
}

// Queue is the double-buffered MPSC packet ring. Producers
// call Enqueue/EnqueueBatch concurrently and wait-free; a single consumer
// calls Drain.
type Queue struct {
	params Params

	mem  []byte
	data *uint32 // atomic data word: q_index (top bit) | q_len (low bits)
	poll *uint32 // atomic poll_wait flag

	half [2][]byte

	obs interfaces.Observer
	log interfaces.Logger
}

// New allocates a queue sized per params, mapped into user-mappable
// shared memory where the platform supports it. obs and log may
// be nil, in which case observations and advisory logs are dropped.
func New(params Params, obs interfaces.Observer, log interfaces.Logger) (*Queue, error) {
	if params.Slots <= 0 || params.SlotSize <= 0 {
		return nil, pfqerr.New(opQueue, pfqerr.KindMemory, "slots and slot size must be positive")
	}
	if params.Caplen > params.SlotSize {
		return nil, pfqerr.New(opQueue, pfqerr.KindMemory, "caplen exceeds slot payload capacity")
	}

	halfSize := params.Slots * (SlotHeaderSize + params.SlotSize)
	total := roundAllocSize(headerSize + 2*halfSize)

	mem, err := mapShared(total)
	if err != nil {
		return nil, pfqerr.Wrap(opQueue, pfqerr.KindMemory, err)
	}

	q := &Queue{
		params: params,
		mem:    mem,
		data:   (*uint32)(unsafe.Pointer(&mem[offData])),
		poll:   (*uint32)(unsafe.Pointer(&mem[offPollWait])),
		obs:    obs,
		log:    log,
	}
	q.half[0] = mem[headerSize : headerSize+halfSize]
	q.half[1] = mem[headerSize+halfSize : headerSize+2*halfSize]
	return q, nil
}

// Close releases the queue's backing memory.
func (q *Queue) Close() error {
	return unmapShared(q.mem)
}

// Slots and SlotSize report the queue's per-half geometry.
func (q *Queue) Slots() int    { return q.params.Slots }
func (q *Queue) SlotSize() int { return q.params.SlotSize }

// slotAt returns slot number slot of the given half. Each slot occupies a
// fixed header followed by SlotSize payload bytes.
func (q *Queue) slotAt(index uint32, slot int) slotView {
	stride := SlotHeaderSize + q.params.SlotSize
	off := slot * stride
	return slotView(q.half[index&1][off : off+stride])
}

func (q *Queue) observeEnqueue(bytes uint64, ok bool) {
	if q.obs != nil {
		q.obs.ObserveEnqueue(bytes, ok)
	}
}

func (q *Queue) observeOverflow() {
	if q.obs != nil {
		q.obs.ObserveEnqueueOverflow()
	}
}

func (q *Queue) observeDepth(qLen uint32) {
	if q.obs != nil {
		q.obs.ObserveQueueDepth(qLen)
	}
}

func (q *Queue) wakeConsumer() {
	if atomic.LoadUint32(q.poll) != 0 {
		atomic.StoreUint32(q.poll, 0)
		futexWake(q.poll, 1)
		if q.obs != nil {
			q.obs.ObserveConsumerWake()
		}
	}
}

// clampBytes computes min(max(frameLen-offset, 0), caplen).
func clampBytes(frameLen, offset, caplen int) int {
	n := frameLen - offset
	if n < 0 {
		n = 0
	}
	if n > caplen {
		n = caplen
	}
	return n
}

// Enqueue implements the single-packet enqueue path. It returns ok=false
// (not an error) when the current half is full; a non-nil error indicates
// an internal copy failure, which producers treat as fatal for the packet.
func (q *Queue) Enqueue(frame []byte, ifIndex, hwQueue int, ts *Timestamp, vlanTCI *uint16) (ok bool, err error) {
	bytes := clampBytes(len(frame), q.params.Offset, q.params.Caplen)

	d := atomic.AddUint32(q.data, 1) - 1 // pre-increment value
	qIndex := DecodeIndex(d)
	qLen := DecodeLen(d) + 1

	if int(qLen) > q.params.Slots {
		q.wakeConsumer()
		q.observeOverflow()
		return false, nil
	}

	slot := q.slotAt(qIndex, int(qLen)-1)
	if bytes > 0 {
		n := copy(slot.payload(), frame[q.params.Offset:q.params.Offset+bytes])
		if n != bytes {
			return false, pfqerr.New(opQueue, pfqerr.KindMemory, "copy-from-frame failure")
		}
	}

	slot.writeHeader(len(frame), bytes, ifIndex, hwQueue, ts, vlanTCI)

	barrier.Release()
	slot.storeReady(qIndex)

	q.observeEnqueue(uint64(bytes), true)
	q.observeDepth(qLen)

	if int(qLen) > q.params.Slots/2 && d&(constants.WatermarkWakeStride-1) == 0 {
		q.wakeConsumer()
	}
	return true, nil
}

// Frame is one input to EnqueueBatch: the raw frame bytes plus its
// per-packet metadata.
type Frame struct {
	Data    []byte
	IfIndex int
	HwQueue int
	Tstamp  *Timestamp
	VlanTCI *uint16
}

// EnqueueBatch implements the batch enqueue path: it claims len(frames)
// slots with a single fetch-and-add up front, then walks the batch placing
// each frame into its derived slot, applying the same per-slot watermark
// wake-up as Enqueue. It returns the count successfully placed; an
// overflow mid-batch is a partial publish, not an atomic all-or-nothing
// failure, and frames already placed before the overflow keep their
// committed, ready-flagged slots.
func (q *Queue) EnqueueBatch(frames []Frame) (placed int, err error) {
	if len(frames) == 0 {
		return 0, nil
	}

	d0 := atomic.AddUint32(q.data, uint32(len(frames))) - uint32(len(frames))
	qIndex := DecodeIndex(d0)
	lenBase := DecodeLen(d0)

	for i, f := range frames {
		d := d0 + uint32(i) // this slot's pre-increment data value
		qLen := lenBase + uint32(i) + 1
		if int(qLen) > q.params.Slots {
			q.wakeConsumer()
			q.observeOverflow()
			break
		}

		bytes := clampBytes(len(f.Data), q.params.Offset, q.params.Caplen)
		slot := q.slotAt(qIndex, int(qLen)-1)
		if bytes > 0 {
			n := copy(slot.payload(), f.Data[q.params.Offset:q.params.Offset+bytes])
			if n != bytes {
				return placed, pfqerr.New(opQueue, pfqerr.KindMemory, "copy-from-frame failure")
			}
		}

		slot.writeHeader(len(f.Data), bytes, f.IfIndex, f.HwQueue, f.Tstamp, f.VlanTCI)
		barrier.Release()
		slot.storeReady(qIndex)

		q.observeEnqueue(uint64(bytes), true)
		q.observeDepth(qLen)
		placed++

		if int(qLen) > q.params.Slots/2 && d&(constants.WatermarkWakeStride-1) == 0 {
			q.wakeConsumer()
		}
	}
	return placed, nil
}

// SetPollWait sets the poll_wait flag the consumer raises before
// sleeping. A producer observing this flag set knows a wake-up may
// be worth the cost; WaitForData blocks until woken or sees the flag
// cleared by an Enqueue/EnqueueBatch call.
func (q *Queue) SetPollWait(v bool) {
	if v {
		atomic.StoreUint32(q.poll, 1)
	} else {
		atomic.StoreUint32(q.poll, 0)
	}
}

// WaitForData parks the calling (consumer) goroutine until a producer wakes
// it via the poll_wait protocol, or until the data word already shows
// more progress than expected. Wake-ups are best-effort; the queue itself
// does not require a consumer to call this, and polling without sleeping
// is equally valid and skips SetPollWait/WaitForData entirely.
func (q *Queue) WaitForData(expected uint32) {
	q.SetPollWait(true)
	if atomic.LoadUint32(q.data) != expected {
		q.SetPollWait(false)
		return
	}
	futexWait(q.poll, 1)
	q.SetPollWait(false)
}

// Drain implements the consumer protocol: it walks the slots claimed so far
// (the data word's q_len, capped at q_slots) in the half currently being
// filled (as named by the data word's q_index), collecting every slot whose
// ready field matches that index, stopping at the first slot that is not
// yet committed, then
// publishes a new data word that clears q_len and flips q_index so
// producers' next fetch-and-add lands in the other half. It returns the
// decoded headers and a view of each slot's captured payload, in slot
// order. The caller (the sole consumer) must not call Drain concurrently
// with another Drain.
func (q *Queue) Drain(fn func(hdr SlotHeader, payload []byte)) int {
	d := atomic.LoadUint32(q.data)
	qIndex := DecodeIndex(d)
	claimed := int(DecodeLen(d))
	if claimed > q.params.Slots {
		claimed = q.params.Slots
	}

	count := 0
	for i := 0; i < claimed; i++ {
		slot := q.slotAt(qIndex, i)
		if slot.readReady() != qIndex {
			break
		}
		hdr := slot.decode()
		fn(hdr, slot.payload()[:hdr.Caplen])
		count++
	}

	atomic.StoreUint32(q.data, encodeSwap(qIndex))
	return count
}
