// logx/debug_hooks.go

//go:build logxdebug

package logx

// Stats holds counters since the last reset. Updates happen inside the
// critical section, so plain increments are safe on a single core.
type Stats struct {
	Records       uint32 // records accepted past the filter
	BytesDropped  uint32 // bytes truncated by the ring
	Transfers     uint32 // hardware transfers started
	Polls         uint32 // Poll/ServiceInterrupt invocations
	RingHighWater uint32 // max unread bytes observed
}

var stats Stats

// DebugStats returns a copy of the counters.
func DebugStats() Stats { return stats }

// DebugReset zeroes the counters.
func DebugReset() { stats = Stats{} }

func dbgRecord(want, got int) {
	stats.Records++
	stats.BytesDropped += uint32(want - got)
}

func dbgTransferStart(int) { stats.Transfers++ }

func dbgPoll() { stats.Polls++ }

func dbgHighWater(used int) {
	if uint32(used) > stats.RingHighWater {
		stats.RingHighWater = uint32(used)
	}
}
