package mpdb

import "encoding/binary"

// Slot header byte layout (bit-exact, part of the reader ABI): len/caplen
// as u32,
// if_index/hw_queue truncated to u8, vlan_tci as u16, an optional
// {sec,nsec} i64 timestamp, and ready (u32) written last. Fields are laid
// out in declaration order with the 8-byte-aligned tstamp pushed out to
// offset 16, padding the 12 bytes in front of it, so the timestamp falls
// on its natural alignment.
const (
	slotOffLen      = 0
	slotOffCaplen   = 4
	slotOffIfIndex  = 8
	slotOffHwQueue  = 9
	slotOffVlanTCI  = 10
	slotOffTSSec    = 16
	slotOffTSNsec   = 24
	slotOffReady    = 32
	// SlotHeaderSize is the fixed header size prefixing every slot's
	// payload region, rounded up to an 8-byte boundary past the ready word.
	SlotHeaderSize = 40
)

// Timestamp is the slot header's optional capture timestamp.
type Timestamp struct {
	Sec  int64
	Nsec int64
}

// SlotHeader is the decoded, read-side view of one packet slot's header,
// returned by the consumer's Drain.
type SlotHeader struct {
	Len      uint32
	Caplen   uint32
	IfIndex  uint8
	HwQueue  uint8
	VlanTCI  uint16
	Tstamp   Timestamp
	HasVlan  bool
	HasTSamp bool
	Ready    uint32
}

// slotView is a thin accessor over one slot's raw bytes (header + payload),
// used on the write side by Enqueue/EnqueueBatch and on the read side by
// Drain.
type slotView []byte

func (s slotView) header() []byte  { return s[:SlotHeaderSize] }
func (s slotView) payload() []byte { return s[SlotHeaderSize:] }

func (s slotView) writeHeader(len_, caplen int, ifIndex, hwQueue int, ts *Timestamp, vlanTCI *uint16) {
	h := s.header()
	binary.LittleEndian.PutUint32(h[slotOffLen:], uint32(len_))
	binary.LittleEndian.PutUint32(h[slotOffCaplen:], uint32(caplen))
	h[slotOffIfIndex] = byte(ifIndex)
	h[slotOffHwQueue] = byte(hwQueue)
	if vlanTCI != nil {
		binary.LittleEndian.PutUint16(h[slotOffVlanTCI:], *vlanTCI)
	} else {
		binary.LittleEndian.PutUint16(h[slotOffVlanTCI:], 0)
	}
	if ts != nil {
		binary.LittleEndian.PutUint64(h[slotOffTSSec:], uint64(ts.Sec))
		binary.LittleEndian.PutUint64(h[slotOffTSNsec:], uint64(ts.Nsec))
	} else {
		binary.LittleEndian.PutUint64(h[slotOffTSSec:], 0)
		binary.LittleEndian.PutUint64(h[slotOffTSNsec:], 0)
	}
}

// storeReady publishes the slot to the consumer: it must run after
// barrier.Release() and after every other header/payload write.
func (s slotView) storeReady(qIndex uint32) {
	h := s.header()
	binary.LittleEndian.PutUint32(h[slotOffReady:], qIndex)
}

func (s slotView) readReady() uint32 {
	return binary.LittleEndian.Uint32(s.header()[slotOffReady:])
}

func (s slotView) decode() SlotHeader {
	h := s.header()
	vlan := binary.LittleEndian.Uint16(h[slotOffVlanTCI:])
	sec := int64(binary.LittleEndian.Uint64(h[slotOffTSSec:]))
	nsec := int64(binary.LittleEndian.Uint64(h[slotOffTSNsec:]))
	return SlotHeader{
		Len:      binary.LittleEndian.Uint32(h[slotOffLen:]),
		Caplen:   binary.LittleEndian.Uint32(h[slotOffCaplen:]),
		IfIndex:  h[slotOffIfIndex],
		HwQueue:  h[slotOffHwQueue],
		VlanTCI:  vlan,
		HasVlan:  vlan != 0,
		Tstamp:   Timestamp{Sec: sec, Nsec: nsec},
		HasTSamp: sec != 0 || nsec != 0,
		Ready:    binary.LittleEndian.Uint32(h[slotOffReady:]),
	}
}
