package logx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingRecordFrames(t *testing.T) {
	var buf bytes.Buffer
	b := NewBlocking(&buf, Config{})

	b.Record(LevelInfo, "app", "hello")
	b.Record(LevelError, "app", "two\nlines") // embedded newlines pass through unescaped

	assert.Equal(t, "[INFO app]: hello\r\n[ERROR app]: two\nlines\r\n", buf.String())
}

func TestBlockingFiltering(t *testing.T) {
	var buf bytes.Buffer
	b := NewBlocking(&buf, Config{
		MaxLevel: LevelInfo,
		Filters:  []Filter{{Target: "app"}},
	})

	b.Record(LevelDebug, "app", "below max")
	b.Record(LevelInfo, "other", "filtered target")
	assert.Zero(t, buf.Len())

	b.Record(LevelInfo, "app", "kept")
	assert.Equal(t, "[INFO app]: kept\r\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken") }

func TestBlockingWriteFailureIsFatal(t *testing.T) {
	b := NewBlocking(failWriter{}, Config{})
	assert.Panics(t, func() { b.Record(LevelInfo, "app", "x") })
}

type flushSink struct {
	bytes.Buffer
	flushed bool
}

func (s *flushSink) Flush() error {
	s.flushed = true
	return nil
}

func TestBlockingFlushReachesSink(t *testing.T) {
	s := &flushSink{}
	b := NewBlocking(s, Config{})
	require.NoError(t, b.Flush())
	assert.True(t, s.flushed)
}

func TestInitBlockingRegistersOnce(t *testing.T) {
	std = nil
	defer func() { std = nil }()

	var buf bytes.Buffer
	_, err := InitBlocking(&buf, Config{})
	require.NoError(t, err)

	_, err = InitBlocking(&bytes.Buffer{}, Config{})
	assert.ErrorIs(t, err, ErrLoggerSet)

	Record(LevelInfo, "app", "sync")
	assert.Equal(t, "[INFO app]: sync\r\n", buf.String())
}
