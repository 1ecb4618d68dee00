package logx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(size int) (*Engine, *SimChannel) {
	ch := &SimChannel{}
	return NewWithBuffer(ch, Config{}, make([]byte, size)), ch
}

// drainSim services the engine until Idle, completing each transfer the
// way hardware would.
func drainSim(e *Engine, ch *SimChannel) {
	for e.Poll() != Idle {
		ch.Finish()
	}
}

func TestRecordStartsTransferWhenIdle(t *testing.T) {
	e, ch := newTestEngine(2048)

	e.Record(LevelInfo, "app", "a")
	assert.Equal(t, 1, ch.Starts)
	assert.True(t, ch.Busy())

	ch.Finish()
	assert.Equal(t, Idle, e.Poll())
	assert.Equal(t, "[INFO app]: a\r\n", string(ch.Sent))
}

func TestRecordAfterCompletionReclaimsAndRestarts(t *testing.T) {
	e, ch := newTestEngine(2048)

	e.Record(LevelInfo, "app", "a")
	ch.Finish()

	// Completion observed inside the logging call: finalize, append,
	// restart. No interleaving, original order.
	e.Record(LevelInfo, "app", "b")
	assert.Equal(t, 2, ch.Starts)

	ch.Finish()
	assert.Equal(t, Idle, e.Poll())
	assert.Equal(t, "[INFO app]: a\r\n[INFO app]: b\r\n", string(ch.Sent))
}

func TestRecordWhileActiveAppendsToTail(t *testing.T) {
	e, ch := newTestEngine(2048)

	e.Record(LevelInfo, "app", "a")
	e.Record(LevelInfo, "app", "b")

	// The second record landed in the write half: no new transfer.
	assert.Equal(t, 1, ch.Starts)

	ch.Finish()
	// Poll reclaims and finds the appended record waiting: restart.
	assert.Equal(t, Active, e.Poll())
	assert.Equal(t, 2, ch.Starts)

	ch.Finish()
	assert.Equal(t, Idle, e.Poll())
	assert.Equal(t, "[INFO app]: a\r\n[INFO app]: b\r\n", string(ch.Sent))
}

func TestPollIdempotentWhenIdle(t *testing.T) {
	e, ch := newTestEngine(2048)
	for i := 0; i < 5; i++ {
		assert.Equal(t, Idle, e.Poll())
	}
	assert.Equal(t, 0, ch.Starts, "poll must never start a spurious transfer")
}

func TestPollWhileActiveDoesNothing(t *testing.T) {
	e, ch := newTestEngine(2048)
	e.Record(LevelInfo, "app", "a")
	assert.Equal(t, Active, e.Poll())
	assert.Equal(t, Active, e.Poll())
	assert.Equal(t, 1, ch.Starts)
}

func TestPollClearsInterruptLatch(t *testing.T) {
	e, ch := newTestEngine(2048)
	e.Record(LevelInfo, "app", "a")
	ch.Finish()
	assert.True(t, ch.InterruptPending())
	e.Poll()
	assert.False(t, ch.InterruptPending())
}

func TestOrderingManyRecords(t *testing.T) {
	e, ch := newTestEngine(2048)

	var want strings.Builder
	msgs := []string{"one", "two", "three", "four", "five"}
	for _, m := range msgs {
		e.Record(LevelDebug, "seq", m)
		want.WriteString("[DEBUG seq]: " + m + "\r\n")
	}
	drainSim(e, ch)
	assert.Equal(t, want.String(), string(ch.Sent))
}

func TestExhaustionKeepsBoundedPrefix(t *testing.T) {
	e, ch := newTestEngine(32)

	line := "[INFO t]: aaaaaaaaaa\r\n" // 22 bytes
	e.Record(LevelInfo, "t", "aaaaaaaaaa")
	e.Record(LevelInfo, "t", "aaaaaaaaaa") // only 10 bytes fit
	e.Record(LevelInfo, "t", "aaaaaaaaaa") // fully dropped

	drainSim(e, ch)

	require.Len(t, ch.Sent, 32, "retained data is bounded by capacity")
	assert.Equal(t, line, string(ch.Sent[:22]))
	assert.Equal(t, line[:10], string(ch.Sent[22:]))
}

func TestDrainDeliversEverything(t *testing.T) {
	e, ch := newTestEngine(2048)
	e.Record(LevelWarn, "w", "first")
	e.Record(LevelWarn, "w", "second")

	drainSim(e, ch)
	assert.Equal(t, "[WARN w]: first\r\n[WARN w]: second\r\n", string(ch.Sent))
}

func TestServiceInterruptOutsideISRPanics(t *testing.T) {
	e, _ := newTestEngine(2048)
	assert.Panics(t, func() { e.ServiceInterrupt() })
}

func TestServiceInterruptReclaims(t *testing.T) {
	e, ch := newTestEngine(2048)
	e.Record(LevelInfo, "app", "a")
	ch.Finish()

	isrContext = true
	defer func() { isrContext = false }()

	require.NotPanics(t, func() { e.ServiceInterrupt() })
	assert.False(t, ch.InterruptPending(), "latch cleared during reclaim")
	assert.Equal(t, Idle, e.Poll())
	assert.Equal(t, "[INFO app]: a\r\n", string(ch.Sent))
}

func TestRecordFromInterruptContext(t *testing.T) {
	// Unrelated interrupt handlers may log too; Record works in both
	// contexts.
	e, ch := newTestEngine(2048)

	isrContext = true
	e.Record(LevelError, "irq", "overcurrent")
	isrContext = false

	drainSim(e, ch)
	assert.Equal(t, "[ERROR irq]: overcurrent\r\n", string(ch.Sent))
}

func TestEngineFilteringSkipsWork(t *testing.T) {
	ch := &SimChannel{}
	e := NewWithBuffer(ch, Config{
		MaxLevel: LevelInfo,
		Filters:  []Filter{{Target: "app"}, {Target: "noisy", Level: LevelError}},
	}, make([]byte, 256))

	e.Record(LevelDebug, "app", "below max level")
	e.Record(LevelInfo, "other", "target not in filter")
	e.Record(LevelInfo, "noisy", "below target threshold")
	assert.Equal(t, 0, ch.Starts)

	e.Record(LevelInfo, "app", "kept")
	drainSim(e, ch)
	assert.Equal(t, "[INFO app]: kept\r\n", string(ch.Sent))
}
