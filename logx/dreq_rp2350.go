// logx/dreq_rp2350.go

//go:build rp2350

package logx

const numDMAChannels = 16

// System DREQ table, RP2350 datasheet 12.6.4.1.
const (
	dreqUART0TX = 28
	dreqUART1TX = 30
)
