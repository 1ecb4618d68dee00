// logx/blocking.go

package logx

import "io"

// Flusher is implemented by sinks that can drain buffered output to the
// underlying device.
type Flusher interface{ Flush() error }

// Blocking is the synchronous counterpart of Engine: each record is on
// the wire (or at least in the transmit FIFO) before Record returns,
// written inside the critical section. Simple and loss-free, but the
// caller stalls at line rate; the asynchronous engine exists to avoid
// exactly that.
type Blocking struct {
	filters  filterList
	maxLevel Level
	w        io.Writer
}

// NewBlocking constructs a blocking engine writing to w. On hardware,
// w is typically a FIFOWriter.
func NewBlocking(w io.Writer, cfg Config) *Blocking {
	return &Blocking{
		filters:  filterList(cfg.Filters),
		maxLevel: cfg.maxLevel(),
		w:        w,
	}
}

// Enabled reports whether a record at level for target would be kept.
func (b *Blocking) Enabled(level Level, target string) bool {
	return level <= b.maxLevel && b.filters.enabled(level, target)
}

// Record writes one framed record, blocking until the sink accepts it.
// Safe from interrupt, fault and panic handlers.
func (b *Blocking) Record(level Level, target, msg string) {
	if !b.Enabled(level, target) {
		return
	}
	token := enterCritical()
	defer exitCritical(token)
	b.writeAll("[")
	b.writeAll(level.String())
	b.writeAll(" ")
	b.writeAll(target)
	b.writeAll("]: ")
	b.writeAll(msg)
	b.writeAll("\r\n")
}

// writeAll pushes s into the sink. A write failure against a valid sink
// is a design invariant violation, not a recoverable condition.
func (b *Blocking) writeAll(s string) {
	if _, err := io.WriteString(b.w, s); err != nil {
		panic("logx: blocking sink write failed")
	}
}

// Flush asks the sink to drain if it knows how to.
func (b *Blocking) Flush() error {
	token := enterCritical()
	defer exitCritical(token)
	if f, ok := b.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
