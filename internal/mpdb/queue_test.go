package mpdb_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfq-lang/pfqcore/internal/mpdb"
)

// countObserver tallies queue signals for wake/overflow assertions.
type countObserver struct {
	wakes     atomic.Int32
	overflows atomic.Int32
}

func (o *countObserver) ObserveRun(uint64, bool)     {}
func (o *countObserver) ObserveEnqueue(uint64, bool)  {}
func (o *countObserver) ObserveEnqueueOverflow()      { o.overflows.Add(1) }
func (o *countObserver) ObserveQueueDepth(uint32)     {}
func (o *countObserver) ObserveConsumerWake()         { o.wakes.Add(1) }

func newTestQueue(t *testing.T, slots, slotSize int) *mpdb.Queue {
	t.Helper()
	q, err := mpdb.New(mpdb.Params{
		Slots:    slots,
		SlotSize: slotSize,
		Offset:   0,
		Caplen:   slotSize - mpdb.SlotHeaderSize,
	}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })
	return q
}

func TestDecodeIndexAndLen(t *testing.T) {
	assert.Equal(t, uint32(0), mpdb.DecodeIndex(0))
	assert.Equal(t, uint32(5), mpdb.DecodeLen(5))
	assert.Equal(t, uint32(1), mpdb.DecodeIndex(1<<31))
	assert.Equal(t, uint32(0), mpdb.DecodeLen(1<<31))
	assert.Equal(t, uint32(1), mpdb.DecodeIndex((1<<31)|42))
	assert.Equal(t, uint32(42), mpdb.DecodeLen((1<<31)|42))
}

// Exclusivity: N concurrent producers enqueuing one packet each into an
// empty half with q_slots = N each land in a distinct slot, all ready
// fields equal to the current q_index.
func TestEnqueue_ConcurrentExclusivity(t *testing.T) {
	const n = 32
	q := newTestQueue(t, n, 256)

	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			frame := make([]byte, 64)
			ok, err := q.Enqueue(frame, 0, 0, nil, nil)
			require.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}

	seen := map[uint32]bool{}
	count := q.Drain(func(hdr mpdb.SlotHeader, payload []byte) {
		assert.Equal(t, uint32(64), hdr.Len)
		seen[hdr.Ready] = true
	})
	assert.Equal(t, n, count)
	assert.Len(t, seen, 1) // all ready fields equal the same q_index
}

// Overflow: with an 8-slot half and 9 producers, exactly 8 enqueues
// succeed; the 9th reports ok=false.
func TestEnqueue_Overflow(t *testing.T) {
	const slots = 8
	q := newTestQueue(t, slots, 256)
	q.SetPollWait(true)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < slots+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := q.Enqueue(make([]byte, 32), 0, 0, nil, nil)
			require.NoError(t, err)
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, slots, succeeded)
}

// Release order: a drained slot's header and payload are fully visible
// whenever its ready field matches the expected index.
func TestEnqueue_ReleaseOrderVisibleOnDrain(t *testing.T) {
	q := newTestQueue(t, 4, 256)

	frame := []byte("the quick brown fox jumps over the lazy dog")
	ok, err := q.Enqueue(frame, 3, 7, &mpdb.Timestamp{Sec: 100, Nsec: 200}, nil)
	require.NoError(t, err)
	require.True(t, ok)

	var got mpdb.SlotHeader
	var gotPayload []byte
	count := q.Drain(func(hdr mpdb.SlotHeader, payload []byte) {
		got = hdr
		gotPayload = append([]byte(nil), payload...)
	})

	require.Equal(t, 1, count)
	assert.Equal(t, uint32(len(frame)), got.Len)
	assert.Equal(t, uint32(len(frame)), got.Caplen)
	assert.Equal(t, uint8(3), got.IfIndex)
	assert.Equal(t, uint8(7), got.HwQueue)
	assert.Equal(t, int64(100), got.Tstamp.Sec)
	assert.Equal(t, int64(200), got.Tstamp.Nsec)
	assert.Equal(t, frame, gotPayload)
}

// Round-trip: q_slots=4, q_slot_size=128,
// q_offset=0, q_caplen=96; four frames of length 80, 120, 150, 200 are
// read back with caplen 80, 96, 96, 96 and len 80, 120, 150, 200.
func TestEnqueue_RoundTripCaplenTruncation(t *testing.T) {
	q, err := mpdb.New(mpdb.Params{Slots: 4, SlotSize: 128, Offset: 0, Caplen: 96}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })

	lens := []int{80, 120, 150, 200}
	for _, l := range lens {
		ok, err := q.Enqueue(make([]byte, l), 0, 0, nil, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}

	var gotLen, gotCaplen []uint32
	count := q.Drain(func(hdr mpdb.SlotHeader, payload []byte) {
		gotLen = append(gotLen, hdr.Len)
		gotCaplen = append(gotCaplen, hdr.Caplen)
		assert.Len(t, payload, int(hdr.Caplen))
	})
	require.Equal(t, 4, count)
	assert.Equal(t, []uint32{80, 120, 150, 200}, gotLen)
	assert.Equal(t, []uint32{80, 96, 96, 96}, gotCaplen)
}

// The batch path applies the watermark wake per slot: with a one-slot
// half and poll_wait raised, the first slot crosses the watermark on the
// stride boundary (d=0) and wakes the consumer before the batch finishes,
// even though the rest of the batch overflows.
func TestEnqueueBatch_WatermarkWakesPerSlot(t *testing.T) {
	obs := &countObserver{}
	q, err := mpdb.New(mpdb.Params{Slots: 1, SlotSize: 128, Offset: 0, Caplen: 64}, obs, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })

	q.SetPollWait(true)

	frames := []mpdb.Frame{
		{Data: make([]byte, 32)},
		{Data: make([]byte, 32)},
		{Data: make([]byte, 32)},
	}
	placed, err := q.EnqueueBatch(frames)
	require.NoError(t, err)
	assert.Equal(t, 1, placed)
	assert.Equal(t, int32(1), obs.wakes.Load(), "watermark wake fires inside the loop, on the placed slot")
	assert.Equal(t, int32(1), obs.overflows.Load())
}

func TestEnqueueBatch_PartialPublishOnOverflow(t *testing.T) {
	q := newTestQueue(t, 4, 256)

	frames := make([]mpdb.Frame, 6)
	for i := range frames {
		frames[i] = mpdb.Frame{Data: make([]byte, 32)}
	}

	placed, err := q.EnqueueBatch(frames)
	require.NoError(t, err)
	assert.Equal(t, 4, placed)

	count := q.Drain(func(mpdb.SlotHeader, []byte) {})
	assert.Equal(t, 4, count)
}

func TestDrain_SwapsHalfAndResetsLen(t *testing.T) {
	q := newTestQueue(t, 4, 256)

	ok, err := q.Enqueue(make([]byte, 16), 0, 0, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	first := q.Drain(func(mpdb.SlotHeader, []byte) {})
	assert.Equal(t, 1, first)

	// After swap, a fresh Enqueue lands at slot 0 of the other half and a
	// second Drain sees exactly one slot again.
	ok, err = q.Enqueue(make([]byte, 16), 0, 0, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	second := q.Drain(func(mpdb.SlotHeader, []byte) {})
	assert.Equal(t, 1, second)
}
