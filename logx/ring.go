// logx/ring.go

// Byte ring used as the shared transfer buffer. Unlike the RX rings in a
// UART driver, this ring is never read by software: bytes leave it only
// through the transfer engine, which hands the contiguous unread run to
// hardware and consumes it on completion.

package logx

// DefaultBufferSize is the capacity of the statically allocated transfer
// buffer used when the caller does not bring their own.
const DefaultBufferSize = 2048

var defaultStorage [DefaultBufferSize]byte

// Ring is a fixed-capacity byte ring with best-effort insertion.
// Bytes that do not fit are dropped; Insert never blocks and never fails.
type Ring struct {
	buf  []byte
	tail int // read cursor, advanced only by consume
	used int // unread bytes; invariant: used <= len(buf)
}

// NewRing returns a ring backed by the provided storage. The caller
// controls size and placement (BYOB); storage must stay valid for the
// life of the ring since hardware reads it directly.
func NewRing(storage []byte) *Ring {
	if len(storage) == 0 {
		panic("logx: ring storage must not be empty")
	}
	return &Ring{buf: storage}
}

// Size returns the total capacity of the ring in bytes.
func (r *Ring) Size() int { return len(r.buf) }

// Used returns the number of unread bytes.
func (r *Ring) Used() int { return r.used }

// IsEmpty reports whether the ring holds no unread bytes.
func (r *Ring) IsEmpty() bool { return r.used == 0 }

// Insert appends as many bytes of p as fit and returns the number
// accepted. The remainder is silently dropped.
func (r *Ring) Insert(p []byte) int {
	n := len(r.buf) - r.used
	if n > len(p) {
		n = len(p)
	}
	if n == 0 {
		return 0
	}
	head := r.tail + r.used
	if head >= len(r.buf) {
		head -= len(r.buf)
	}
	first := copy(r.buf[head:], p[:n])
	if first < n {
		copy(r.buf, p[first:n]) // wrapped
	}
	r.used += n
	return n
}

// InsertString is Insert for string data without an intermediate copy.
func (r *Ring) InsertString(s string) int {
	n := len(r.buf) - r.used
	if n > len(s) {
		n = len(s)
	}
	if n == 0 {
		return 0
	}
	head := r.tail + r.used
	if head >= len(r.buf) {
		head -= len(r.buf)
	}
	first := copy(r.buf[head:], s[:n])
	if first < n {
		copy(r.buf, s[first:n])
	}
	r.used += n
	return n
}

// run returns the contiguous unread region starting at the read cursor.
// This is the slice handed to hardware; it may be shorter than Used()
// when the unread region wraps.
func (r *Ring) run() []byte {
	n := r.used
	if rem := len(r.buf) - r.tail; n > rem {
		n = rem
	}
	return r.buf[r.tail : r.tail+n]
}

// consume advances the read cursor past n transmitted bytes.
func (r *Ring) consume(n int) {
	if n > r.used {
		panic("logx: consume past unread data")
	}
	r.tail += n
	if r.tail >= len(r.buf) {
		r.tail -= len(r.buf)
	}
	r.used -= n
}
