// logx/critical_rp2.go

//go:build rp2040 || rp2350

package logx

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// The critical section is single-core interrupt masking, nothing more.
// It gives exclusive access against every interrupt handler on this
// core; it provides no safety against the second core or another bus
// master. The scope is non-reentrant: nesting is a programmer error.

type csToken = interrupt.State

var csHeld bool

func enterCritical() csToken {
	state := interrupt.Disable()
	if csHeld {
		panic("logx: critical section re-entered")
	}
	csHeld = true
	return state
}

func exitCritical(state csToken) {
	csHeld = false
	interrupt.Restore(state)
}

// ICSR.VECTACTIVE is non-zero while the core is running any exception
// handler.
var scbICSR = (*volatile.Register32)(unsafe.Pointer(uintptr(0xE000ED04)))

const vectactiveMask = 0x1FF

func inInterrupt() bool {
	return scbICSR.Get()&vectactiveMask != 0
}
