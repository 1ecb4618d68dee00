// logx/logx.go

// Package logx is a non-blocking, interrupt-safe log transport for
// RP2040/RP2350. Records are serialized into a shared circular buffer
// and moved to the transmit peripheral by a DMA channel, so a logging
// call never waits on the wire: it copies bytes and returns. A
// synchronous blocking engine is provided for the cases where simplicity
// beats latency (panic handlers, early boot).
//
// The asynchronous engine must be driven: call Poll throughout the event
// loop, or install ServiceInterrupt as the DMA completion handler. On
// host builds (no rp2040/rp2350 tag) the hardware is replaced by a
// simulated channel so the package is testable with plain go test.
package logx

import (
	"errors"
	"fmt"
	"io"
)

// Level classifies a record. Lower values are more severe; a level is
// enabled when it is at or below the configured maximum.
type Level uint8

const (
	LevelError Level = iota + 1
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// String returns the uppercase level name used in the wire format.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	}
	return "UNKNOWN"
}

// Filter admits a single target. A zero Level places no per-target
// restriction beyond the global maximum.
type Filter struct {
	Target string
	Level  Level
}

// Config selects the maximum level and the targets of interest.
// The zero value records every level for every target.
type Config struct {
	// MaxLevel is the most verbose level that will be recorded.
	// Zero selects LevelTrace.
	MaxLevel Level
	// Filters restricts recording to the listed targets. An empty list
	// allows every target.
	Filters []Filter
}

func (c Config) maxLevel() Level {
	if c.MaxLevel == 0 {
		return LevelTrace
	}
	return c.MaxLevel
}

type filterList []Filter

// enabled reports whether the list admits a record. An empty list admits
// everything; otherwise the target must be present and the record's
// level at or below the entry's level (zero meaning any).
func (f filterList) enabled(level Level, target string) bool {
	if len(f) == 0 {
		return true
	}
	for _, flt := range f {
		if flt.Target == target {
			return flt.Level == 0 || level <= flt.Level
		}
	}
	return false
}

// Logger is the producer surface shared by the asynchronous engine and
// the blocking engine.
type Logger interface {
	Enabled(level Level, target string) bool
	Record(level Level, target, msg string)
}

// ErrLoggerSet reports that a logger is already registered; the first
// registration stays in effect.
var ErrLoggerSet = errors.New("logx: logger already set")

// The process-wide default logger. Set once via Init/InitBlocking.
var std Logger

func setDefault(l Logger) error {
	token := enterCritical()
	defer exitCritical(token)
	if std != nil {
		return ErrLoggerSet
	}
	std = l
	return nil
}

// Init constructs an asynchronous engine over the default buffer and
// registers it as the package default. A second registration returns
// ErrLoggerSet and leaves the first engine in use.
func Init(ch Channel, cfg Config) (*Engine, error) {
	e := New(ch, cfg)
	if err := setDefault(e); err != nil {
		return nil, err
	}
	return e, nil
}

// InitWithBuffer is Init with caller-supplied buffer storage (BYOB).
func InitWithBuffer(ch Channel, cfg Config, storage []byte) (*Engine, error) {
	e := NewWithBuffer(ch, cfg, storage)
	if err := setDefault(e); err != nil {
		return nil, err
	}
	return e, nil
}

// InitBlocking constructs a blocking engine over w and registers it as
// the package default, with the same once-only semantics as Init.
func InitBlocking(w io.Writer, cfg Config) (*Blocking, error) {
	b := NewBlocking(w, cfg)
	if err := setDefault(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Record writes one preformatted message through the default logger.
// It is a no-op until a logger is registered.
func Record(level Level, target, msg string) {
	if std != nil {
		std.Record(level, target, msg)
	}
}

// Logf formats and records a message. Formatting happens outside the
// critical section and only after the level/target gate passes.
func Logf(level Level, target, format string, args ...any) {
	if std == nil || !std.Enabled(level, target) {
		return
	}
	if len(args) == 0 {
		std.Record(level, target, format)
		return
	}
	std.Record(level, target, fmt.Sprintf(format, args...))
}

func Errorf(target, format string, args ...any) { Logf(LevelError, target, format, args...) }
func Warnf(target, format string, args ...any)  { Logf(LevelWarn, target, format, args...) }
func Infof(target, format string, args ...any)  { Logf(LevelInfo, target, format, args...) }
func Debugf(target, format string, args ...any) { Logf(LevelDebug, target, format, args...) }
func Tracef(target, format string, args ...any) { Logf(LevelTrace, target, format, args...) }

// Poll drives the default asynchronous engine. It panics if no
// asynchronous engine is registered.
func Poll() Status {
	e, ok := std.(*Engine)
	if !ok {
		panic("logx: no asynchronous engine registered")
	}
	return e.Poll()
}

// Drain busy-loops Poll until the default engine reports Idle. This
// waits out every queued transfer, not just the latest.
func Drain() {
	for Poll() != Idle {
	}
}
