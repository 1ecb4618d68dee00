// logx/blocking_rp2.go

//go:build rp2040 || rp2350

package logx

// FIFOWriter adapts a PL011 transmit FIFO to the blocking engine's
// sink. Writes busy-wait on TXFF per byte and return once the final
// byte is in the FIFO; they do not wait for the line to drain. The spin
// is a plain loop, no yielding: the blocking engine calls this with
// interrupts masked and the FIFO drains in hardware regardless.

import "device/rp"

type FIFOWriter struct {
	Bus *rp.UART0_Type
}

func (w *FIFOWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		for w.Bus.UARTFR.HasBits(rp.UART0_UARTFR_TXFF) {
		}
		w.Bus.UARTDR.Set(uint32(b))
	}
	return len(p), nil
}

// WriteString keeps io.WriteString allocation-free.
func (w *FIFOWriter) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		for w.Bus.UARTFR.HasBits(rp.UART0_UARTFR_TXFF) {
		}
		w.Bus.UARTDR.Set(uint32(s[i]))
	}
	return len(s), nil
}

// Flush waits for the shifter to go idle: FIFO empty and all bits on
// the wire.
func (w *FIFOWriter) Flush() error {
	for w.Bus.UARTFR.HasBits(rp.UART0_UARTFR_BUSY) {
	}
	return nil
}
