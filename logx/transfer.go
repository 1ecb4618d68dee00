// logx/transfer.go

package logx

// Channel is the transmit capability the transfer engine drives: a
// hardware channel that copies a byte region to the transmit peripheral
// without further software involvement.
//
// Start must only be called while Busy reports false. The slice handed
// to Start stays under hardware ownership until Busy reports false
// again. InterruptPending and ClearInterrupt expose the completion
// interrupt latch; both are called with the critical section held.
type Channel interface {
	Start(p []byte)
	Busy() bool
	InterruptPending() bool
	ClearInterrupt()
}

// Transfer owns the shared buffer while hardware reads from it. Exactly
// one of the logging engine and the transfer engine holds the buffer at
// any instant; Start takes ownership, Reclaim gives it back.
type Transfer struct {
	ch      Channel
	buf     *Ring // non-nil while a transfer is active
	started int   // bytes handed to hardware at Start
}

func newTransfer(ch Channel) Transfer {
	return Transfer{ch: ch}
}

// Start hands the buffer's contiguous unread run to hardware. Starting
// while a transfer is active, or with nothing to send, is a programmer
// error: the state machine cannot reach either.
func (t *Transfer) Start(buf *Ring) {
	if t.buf != nil {
		panic("logx: transfer already active")
	}
	run := buf.run()
	if len(run) == 0 {
		panic("logx: transfer of empty buffer")
	}
	t.buf = buf
	t.started = len(run)
	dbgTransferStart(len(run))
	t.ch.Start(run)
}

// Active reports whether the transfer engine currently owns the buffer.
func (t *Transfer) Active() bool { return t.buf != nil }

// Completed is a non-destructive completion query; ownership moves only
// through Reclaim.
func (t *Transfer) Completed() bool {
	return t.buf != nil && !t.ch.Busy()
}

// Reclaim returns the buffer once the transfer completes, consuming the
// transmitted bytes. It yields ownership at most once per transfer: a
// call before completion, or a second call, returns false.
func (t *Transfer) Reclaim() (*Ring, bool) {
	if !t.Completed() {
		return nil, false
	}
	buf := t.buf
	t.buf = nil
	buf.consume(t.started)
	t.started = 0
	return buf, true
}

// InterruptPending reports the channel's completion latch.
func (t *Transfer) InterruptPending() bool { return t.ch.InterruptPending() }

// ClearInterrupt clears the completion latch.
func (t *Transfer) ClearInterrupt() { t.ch.ClearInterrupt() }

// WriteHalf returns an append handle into the unsent remainder of the
// active transfer's buffer, or false when no transfer is active.
// Hardware drains the head while the handle fills the tail; the regions
// cannot overlap because in-flight bytes still count against capacity.
func (t *Transfer) WriteHalf() (TailWriter, bool) {
	if t.buf == nil {
		return TailWriter{}, false
	}
	return TailWriter{r: t.buf}, true
}

// TailWriter appends into the untransmitted tail of an active transfer.
// Inserts follow the ring's drop policy.
type TailWriter struct {
	r *Ring
}

// Insert appends p best-effort, returning the number of bytes accepted.
func (w TailWriter) Insert(p []byte) int { return w.r.Insert(p) }

// InsertString appends s best-effort, returning the bytes accepted.
func (w TailWriter) InsertString(s string) int { return w.r.InsertString(s) }
