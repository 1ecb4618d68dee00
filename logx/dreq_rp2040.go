// logx/dreq_rp2040.go

//go:build rp2040

package logx

const numDMAChannels = 12

// System DREQ table, RP2040 datasheet 2.5.3.1.
const (
	dreqUART0TX = 0x14
	dreqUART1TX = 0x16
)
