// logx/engine.go

package logx

// Status is the result of driving the engine with Poll.
type Status uint8

const (
	// Idle: no transfer is active; the next record is scheduled
	// immediately.
	Idle Status = iota
	// Active: a transfer is in flight. It was either still running, or
	// it completed with appended data waiting and was restarted.
	Active
)

func (s Status) String() string {
	if s == Idle {
		return "idle"
	}
	return "active"
}

// Engine is the asynchronous logging engine. It holds exactly one of
// {an idle buffer, an active transfer}; every state change happens
// inside the interrupt-masking critical section, making Record, Poll
// and ServiceInterrupt atomic with respect to each other across thread
// mode and every interrupt handler on the core.
type Engine struct {
	filters  filterList
	maxLevel Level
	tr       Transfer
	idle     *Ring // non-nil when no transfer is active
}

// New constructs an engine over the default statically allocated
// buffer. Meant for the single process-wide engine; a second engine
// needs its own storage via NewWithBuffer.
func New(ch Channel, cfg Config) *Engine {
	return NewWithBuffer(ch, cfg, defaultStorage[:])
}

// NewWithBuffer constructs an engine over caller-supplied storage,
// which controls buffer size and placement. The storage must stay valid
// for the life of the process: hardware reads it directly.
func NewWithBuffer(ch Channel, cfg Config, storage []byte) *Engine {
	return &Engine{
		filters:  filterList(cfg.Filters),
		maxLevel: cfg.maxLevel(),
		tr:       newTransfer(ch),
		idle:     NewRing(storage),
	}
}

// Enabled reports whether a record at level for target would be kept.
// Callers formatting a message should check it first.
func (e *Engine) Enabled(level Level, target string) bool {
	return level <= e.maxLevel && e.filters.enabled(level, target)
}

// recordWriter is any destination writeRecord can serialize into: the
// idle ring, or the write half of an active transfer.
type recordWriter interface {
	InsertString(s string) int
}

// writeRecord serializes "[LEVEL target]: msg\r\n". A short count means
// the ring ran out of space; the excess is dropped by contract.
func writeRecord(dst recordWriter, level Level, target, msg string) (want, got int) {
	for _, s := range [...]string{"[", level.String(), " ", target, "]: ", msg, "\r\n"} {
		want += len(s)
		got += dst.InsertString(s)
	}
	return want, got
}

// Record serializes one record and advances the transfer state machine.
// It never blocks: depending on the state it starts a transfer,
// finalizes and restarts a completed one, or appends to the in-flight
// tail. Bytes beyond the buffer's remaining capacity are silently
// dropped.
//
// Record is safe from thread mode and from any interrupt handler,
// including the completion interrupt itself.
func (e *Engine) Record(level Level, target, msg string) {
	if !e.Enabled(level, target) {
		return
	}
	token := enterCritical()
	defer exitCritical(token)

	switch {
	case e.idle != nil:
		// The buffer is here, so no transfer is active.
		buf := e.idle
		e.idle = nil
		want, got := writeRecord(buf, level, target, msg)
		dbgRecord(want, got)
		dbgHighWater(buf.Used())
		e.tr.Start(buf)
	case e.tr.Completed():
		// Finalize the completed transfer and reschedule right away,
		// keeping the gap between transfers small.
		buf, _ := e.tr.Reclaim()
		want, got := writeRecord(buf, level, target, msg)
		dbgRecord(want, got)
		dbgHighWater(buf.Used())
		e.tr.Start(buf)
	default:
		// Transfer in flight: fill the unsent tail and return. No
		// transfer is started here.
		w, _ := e.tr.WriteHalf()
		want, got := writeRecord(w, level, target, msg)
		dbgRecord(want, got)
		dbgHighWater(w.r.Used())
	}
}

// Poll drives the state machine: clear a pending completion interrupt,
// reclaim a finished transfer, restart it when appended data is
// waiting, otherwise park the buffer idle. Callable from any context
// and idempotent when idle.
func (e *Engine) Poll() Status {
	token := enterCritical()
	defer exitCritical(token)
	return e.service()
}

// service holds the reclaim/restart logic shared by Poll and
// ServiceInterrupt. The caller must hold the critical section.
func (e *Engine) service() Status {
	dbgPoll()
	if e.tr.InterruptPending() {
		e.tr.ClearInterrupt()
	}
	if buf, ok := e.tr.Reclaim(); ok {
		if !buf.IsEmpty() {
			// Data was appended while the transfer ran.
			e.tr.Start(buf)
		} else {
			e.idle = buf
		}
	}
	if e.idle != nil {
		return Idle
	}
	return Active
}

// ServiceInterrupt is the interrupt-only reclaim entry point, meant to
// be installed as the DMA completion handler (see
// DMAChannel.SetInterruptHandler). Invoking it from thread mode is a
// context violation and halts execution.
func (e *Engine) ServiceInterrupt() {
	if !inInterrupt() {
		panic("logx: ServiceInterrupt outside interrupt context")
	}
	token := enterCritical()
	defer exitCritical(token)
	e.service()
}

// Drain busy-loops Poll until the engine reports Idle, forcing delivery
// of all buffered data. It also waits out previously queued transfers.
func (e *Engine) Drain() {
	for e.Poll() != Idle {
	}
}
