package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingInsertBestEffort(t *testing.T) {
	r := NewRing(make([]byte, 8))

	assert.True(t, r.IsEmpty())
	assert.Equal(t, 8, r.Size())

	n := r.Insert([]byte("abc"))
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, r.Used())

	// Overfill: only the remaining capacity is accepted, the rest is
	// dropped silently.
	n = r.Insert([]byte("defghijk"))
	assert.Equal(t, 5, n)
	assert.Equal(t, 8, r.Used())

	// Full ring accepts nothing.
	n = r.Insert([]byte("x"))
	assert.Equal(t, 0, n)
	assert.Equal(t, 8, r.Used())
}

func TestRingInsertString(t *testing.T) {
	r := NewRing(make([]byte, 4))
	assert.Equal(t, 4, r.InsertString("wxyz!"))
	assert.Equal(t, "wxyz", string(r.run()))
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(make([]byte, 8))

	r.InsertString("abcdef")
	r.consume(4) // simulate a completed transfer of "abcd"
	assert.Equal(t, 2, r.Used())

	// "ghijk" wraps: 4 bytes fit at the end, 2 at the start, 0 dropped.
	n := r.InsertString("ghijk")
	assert.Equal(t, 5, n)
	assert.Equal(t, 7, r.Used())

	// The contiguous run stops at the end of storage.
	assert.Equal(t, "efgh", string(r.run()))
	r.consume(len(r.run()))

	// Remainder is the wrapped part.
	assert.Equal(t, "ijk", string(r.run()))
	r.consume(3)
	assert.True(t, r.IsEmpty())
}

func TestRingConsumePastUnreadPanics(t *testing.T) {
	r := NewRing(make([]byte, 8))
	r.InsertString("ab")
	assert.Panics(t, func() { r.consume(3) })
}

func TestNewRingRejectsEmptyStorage(t *testing.T) {
	assert.Panics(t, func() { NewRing(nil) })
}
