// Package combinators is the built-in functional library the Lang Engine
// ships: pass-through/counter primitives, a CRC-16 state
// combinator, rate-limited logging, and the inv/par meta-combinators.
package combinators

import (
	"encoding/binary"
	"fmt"

	"github.com/pfq-lang/pfqcore/internal/group"
	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/node"
	"github.com/pfq-lang/pfqcore/internal/packet"
)

// Dummy is the identity-pass combinator (dummy : Int -> Buf -> Action
// Buf). It ignores its argument and passes the packet through.
func Dummy(b *packet.Buf, arg []byte) *packet.Buf { return b }

// VDummy is the identity-pass combinator taking a vector argument
// ([Int] -> Buf -> Action Buf).
func VDummy(b *packet.Buf, arg []byte) *packet.Buf { return b }

func counterCtx(b *packet.Buf) group.CounterContext {
	ctx, ok := b.State.Context.(group.CounterContext)
	if !ok {
		return nil
	}
	return ctx
}

// Inc increments the sparse counter at the index carried in arg.
func Inc(b *packet.Buf, arg []byte) *packet.Buf {
	if ctx := counterCtx(b); ctx != nil {
		ctx.Counter(decodeInt(arg)).Add(1)
	}
	return b
}

// Dec decrements the sparse counter at the index carried in arg.
func Dec(b *packet.Buf, arg []byte) *packet.Buf {
	if ctx := counterCtx(b); ctx != nil {
		ctx.Counter(decodeInt(arg)).Add(-1)
	}
	return b
}

// Mark stores the UInt64 argument into the packet's fanout mark.
func Mark(b *packet.Buf, arg []byte) *packet.Buf {
	b.State.Fanout.Mark = decodeUint64(arg)
	return b
}

// CRC16 computes the CRC-16/CCITT-FALSE checksum of the packet payload and
// stores it in the packet's state.
func CRC16(b *packet.Buf, arg []byte) *packet.Buf {
	b.State.CRC16 = crc16CCITT(b.Payload)
	return b
}

// CRCEquals is the companion predicate that tests the previously computed
// CRC16 against a constant carried in arg, used as the higher-order
// node's fun reference when building a checksum filter.
func CRCEquals(b *packet.Buf, arg []byte) bool {
	return b.State.CRC16 == uint16(decodeInt(arg))
}

// Filter is the higher-order gate (filter : (Buf -> Bool) -> Buf -> Action
// Buf): packets satisfying the referenced predicate pass unchanged, the
// rest are marked drop.
func Filter(b *packet.Buf, pred node.Test) *packet.Buf {
	if !pred(b) {
		b.State.Action = packet.ActionDrop
	}
	return b
}

func decodeInt(arg []byte) int {
	if len(arg) < 8 {
		return 0
	}
	return int(int64(binary.LittleEndian.Uint64(arg)))
}

func decodeUint64(arg []byte) uint64 {
	if len(arg) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(arg)
}

// LogFields is the narrow logging surface the log_* combinators depend on,
// matching interfaces.Logger's advisory subset.
type LogFields interface {
	Infof(format string, args ...any)
	Limited(key string, everyMillis int64) bool
}

// logEveryMillis bounds log_msg/log_buff/log_packet to roughly one emission
// per second per packet-path call site. Logging on the packet path is
// advisory only.
const logEveryMillis = 1000

// LogMsg logs a user-supplied message, rate-limited. arg carries the raw
// UTF-8 message bytes (log_msg : String -> Buf -> Action Buf).
func LogMsg(log interfaces.Logger) node.MonadicFn {
	return func(b *packet.Buf, arg []byte) *packet.Buf {
		if log.Limited("log_msg", logEveryMillis) {
			log.Infof("%s", string(arg))
		}
		return b
	}
}

// LogBuff logs a short summary of the packet buffer, rate-limited.
func LogBuff(log interfaces.Logger) node.MonadicFn {
	return func(b *packet.Buf, arg []byte) *packet.Buf {
		if log.Limited("log_buff", logEveryMillis) {
			log.Infof("buf len=%d caplen=%d action=%s", b.Len, len(b.Payload), b.State.Action)
		}
		return b
	}
}

// LogPacket logs a one-line L3/L4 summary of the packet, rate-limited. It
// recognizes IPv4 and, within it, UDP/TCP/ICMP; anything else is reported
// generically.
func LogPacket(log interfaces.Logger) node.MonadicFn {
	return func(b *packet.Buf, arg []byte) *packet.Buf {
		if log.Limited("log_packet", logEveryMillis) {
			log.Infof("%s", summarizeL3L4(b.Payload))
		}
		return b
	}
}

func summarizeL3L4(payload []byte) string {
	const ethHeaderLen = 14
	if len(payload) < ethHeaderLen+20 {
		return "packet: too short to summarize"
	}
	ipHdr := payload[ethHeaderLen:]
	if ipHdr[0]>>4 != 4 {
		return "packet: non-IPv4"
	}
	ihl := int(ipHdr[0]&0x0f) * 4
	if len(ipHdr) < ihl {
		return "packet: truncated IPv4 header"
	}
	proto := ipHdr[9]
	switch proto {
	case 6:
		return fmt.Sprintf("packet: IPv4/TCP %d bytes", len(payload))
	case 17:
		return fmt.Sprintf("packet: IPv4/UDP %d bytes", len(payload))
	case 1:
		return fmt.Sprintf("packet: IPv4/ICMP %d bytes", len(payload))
	default:
		return fmt.Sprintf("packet: IPv4/proto=%d %d bytes", proto, len(payload))
	}
}
