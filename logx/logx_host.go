// logx/logx_host.go

//go:build !rp2040 && !rp2350

package logx

// Host shim: critical section, interrupt-context flag and a simulated
// transmit channel, so the whole state machine runs under plain go test
// with no device or machine deps.

type csToken struct{}

var csHeld bool

func enterCritical() csToken {
	if csHeld {
		panic("logx: critical section re-entered")
	}
	csHeld = true
	return csToken{}
}

func exitCritical(csToken) {
	csHeld = false
}

// isrContext stands in for Cortex-M VECTACTIVE; tests flip it to
// simulate running inside the completion interrupt.
var isrContext bool

func inInterrupt() bool { return isrContext }

// SimChannel is a transmit channel for host builds. Start captures the
// region handed over by the engine; Finish models hardware completion,
// moving the in-flight bytes to Sent and raising the interrupt latch.
type SimChannel struct {
	inflight []byte
	busy     bool
	irq      bool

	Sent   []byte // bytes "on the wire", in transmit order
	Starts int    // transfers started
}

func (c *SimChannel) Start(p []byte) {
	if c.busy {
		panic("logx: sim channel started while busy")
	}
	if len(p) == 0 {
		panic("logx: sim channel started with no data")
	}
	c.inflight = p
	c.busy = true
	c.Starts++
}

func (c *SimChannel) Busy() bool { return c.busy }

func (c *SimChannel) InterruptPending() bool { return c.irq }

func (c *SimChannel) ClearInterrupt() { c.irq = false }

// Finish completes the in-flight transfer. The engine still owns the
// buffer until it observes the completion via Poll or Record.
func (c *SimChannel) Finish() {
	if !c.busy {
		panic("logx: sim channel finish without transfer")
	}
	c.Sent = append(c.Sent, c.inflight...)
	c.inflight = nil
	c.busy = false
	c.irq = true
}
